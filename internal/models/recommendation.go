package models

import "time"

// Recommendation is one curated trade idea for the day. Rows are replaced
// wholesale by the recommendation sync and never edited through the API.
type Recommendation struct {
	ID              uint64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Symbol          string  `gorm:"type:varchar(32);not null;index" json:"symbol"`
	Strategy        string  `gorm:"type:varchar(120)" json:"strategy"`
	StrikeInfo      string  `gorm:"type:varchar(255)" json:"strike_info"`
	Entry           float64 `gorm:"not null;default:0" json:"entry"`
	Stop            float64 `gorm:"not null;default:0" json:"stop"`
	Target          float64 `gorm:"not null;default:0" json:"target"`
	Expiry          string  `gorm:"type:varchar(32)" json:"expiry"`
	ConfidenceLevel int     `gorm:"not null;default:1" json:"confidence_level"`
	Premium         float64 `gorm:"not null;default:0" json:"premium"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}

// RecommendationView is what the ideas feed returns. When a live price was
// applied Entry/Stop/Target hold the re-anchored levels.
type RecommendationView struct {
	Recommendation
	CurrentPrice *float64 `json:"currentPrice,omitempty"`
}
