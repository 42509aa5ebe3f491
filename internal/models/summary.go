package models

// WeeklySummary aggregates the trades confirmed in the current week.
type WeeklySummary struct {
	TotalTaken       int `json:"totalTaken"`
	Wins             int `json:"wins"`
	Losses           int `json:"losses"`
	Neutral          int `json:"neutral"`
	WinRate          int `json:"winRate"`
	SkippedHitTarget int `json:"skippedHitTarget"`
}
