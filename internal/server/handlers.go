package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ppiankov/trendscope/internal/model"
)

type analyzeRequest struct {
	Topic string `json:"topic" binding:"required"`
}

type analyzeResponse struct {
	Status string `json:"status"`
	RunID  uint64 `json:"run_id"`
	Topic  string `json:"topic"`
}

type batchResponse struct {
	Loading bool                 `json:"loading"`
	RunID   uint64               `json:"run_id"`
	Batch   *model.AnalysisBatch `json:"batch"`
}

// handleHealth handles GET /healthz
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleTopics handles GET /api/topics
func (s *Server) handleTopics(c *gin.Context) {
	c.JSON(http.StatusOK, model.PresetTopics)
}

// handleAnalyze handles POST /api/analyze
func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be {\"topic\": \"...\"}"})
		return
	}

	runID, err := s.runner.StartAnalysis(s.runCtx, req.Topic)
	if errors.Is(err, model.ErrEmptyTopic) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		s.log.WithError(err).Error("Analysis not started")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis could not be started"})
		return
	}

	c.JSON(http.StatusAccepted, analyzeResponse{
		Status: "started",
		RunID:  runID,
		Topic:  model.ResolveTopic(req.Topic),
	})
}

// handleBatch handles GET /api/batch
func (s *Server) handleBatch(c *gin.Context) {
	batch, loading := s.board.Snapshot()
	c.JSON(http.StatusOK, batchResponse{
		Loading: loading,
		RunID:   s.board.LatestRun(),
		Batch:   batch,
	})
}
