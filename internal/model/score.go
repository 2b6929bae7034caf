package model

// Sector buckets used for saturation scoring
const (
	SectorDeFi           = "DeFi"
	SectorNFTsGaming     = "NFTs/Gaming"
	SectorInfrastructure = "Infrastructure"
)

// SaturationLevel is the qualitative band of a saturation score
type SaturationLevel string

const (
	LevelLow    SaturationLevel = "Low"
	LevelMedium SaturationLevel = "Medium"
	LevelHigh   SaturationLevel = "High"
)

// SectorScore is the job market saturation of one sector.
// Higher scores mean a more crowded or riskier market.
type SectorScore struct {
	Sector   string          `json:"sector"`
	Score    int             `json:"score"` // 0-100
	Level    SaturationLevel `json:"level"`
	Articles int             `json:"articles"` // Classifications routed to this sector
}
