package models

import "time"

const (
	TradeStatusOpen   = "open"
	TradeStatusClosed = "closed"

	OutcomePending = "pending"
	OutcomeWin     = "win"
	OutcomeLoss    = "loss"
	OutcomeNeutral = "neutral"
)

// ConfirmedTrade is a snapshot of a Recommendation the user took, tracked
// until it is closed. ID is the recommendation id; Seq only keeps insertion
// order.
type ConfirmedTrade struct {
	Seq uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	ID  uint64 `gorm:"column:id;not null;uniqueIndex" json:"id"`

	Symbol          string  `gorm:"type:varchar(32);not null;index" json:"symbol"`
	Strategy        string  `gorm:"type:varchar(120)" json:"strategy"`
	StrikeInfo      string  `gorm:"type:varchar(255)" json:"strike_info"`
	Entry           float64 `gorm:"not null;default:0" json:"entry"`
	Stop            float64 `gorm:"not null;default:0" json:"stop"`
	Target          float64 `gorm:"not null;default:0" json:"target"`
	Expiry          string  `gorm:"type:varchar(32)" json:"expiry"`
	ConfidenceLevel int     `gorm:"not null;default:1" json:"confidence_level"`
	Premium         float64 `gorm:"not null;default:0" json:"premium"`

	ConfirmedAt time.Time  `gorm:"not null;index" json:"confirmed_at"`
	Status      string     `gorm:"type:varchar(16);not null;default:'open';index" json:"status"`
	Outcome     string     `gorm:"type:varchar(16);not null;default:'pending'" json:"outcome"`
	Notes       string     `gorm:"type:text" json:"notes"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`

	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (ConfirmedTrade) TableName() string {
	return "confirmed_trades"
}

// NewConfirmedTrade copies every recommendation field into an open trade.
func NewConfirmedTrade(rec Recommendation, confirmedAt time.Time) ConfirmedTrade {
	return ConfirmedTrade{
		ID:              rec.ID,
		Symbol:          rec.Symbol,
		Strategy:        rec.Strategy,
		StrikeInfo:      rec.StrikeInfo,
		Entry:           rec.Entry,
		Stop:            rec.Stop,
		Target:          rec.Target,
		Expiry:          rec.Expiry,
		ConfidenceLevel: rec.ConfidenceLevel,
		Premium:         rec.Premium,
		ConfirmedAt:     confirmedAt,
		Status:          TradeStatusOpen,
		Outcome:         OutcomePending,
		Notes:           "",
	}
}

func (t ConfirmedTrade) IsClosed() bool {
	return t.Status == TradeStatusClosed
}

// ValidOutcome reports whether o is a terminal outcome a trade can close with.
func ValidOutcome(o string) bool {
	switch o {
	case OutcomeWin, OutcomeLoss, OutcomeNeutral:
		return true
	default:
		return false
	}
}
