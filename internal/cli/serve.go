package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/ppiankov/trendscope/internal/pipeline"
	"github.com/ppiankov/trendscope/internal/server"
)

var serveAddr string

// serveCmd runs the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis HTTP API",
	Long: `Serve starts an HTTP API that runs analyses in the background and
exposes the most recently published batch.

Endpoints:
  GET  /healthz        liveness
  GET  /api/topics     preset topics
  POST /api/analyze    {"topic": "..."}; starts a run, returns its run id
  GET  /api/batch      latest published batch and loading flag`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	log, logCloser, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logCloser.Close() }()
	if cfg.News.APIKey == "" {
		log.Warn("News API key not set (GNEWS_API_KEY), every analysis will report a search error")
	}

	p, err := pipeline.NewPipeline(cfg, log)
	if err != nil {
		return err
	}

	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(p, p.Board(), log).Run(ctx, cfg.Server.Addr)
}
