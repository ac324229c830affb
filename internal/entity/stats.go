package entity

// PlayerStats is a durable rating record, one row per player name.
type PlayerStats struct {
	Name   string  `json:"name"`
	Elo    float64 `json:"elo"`
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
}
