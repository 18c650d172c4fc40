package pool

import (
	"github.com/gmsim/api-server/internals/positions"

	"gorm.io/datatypes"
)

// RawPlayer is one scraped row from the players table. Stats is sparse:
// a stat is absent when the source never recorded it for the player,
// and values arrive as JSON numbers or strings ("62.5%", "1,024").
type RawPlayer struct {
	PlayerID   string            `gorm:"column:player_id" json:"player_id"`
	PlayerName string            `gorm:"column:player_name" json:"player_name"`
	Pos        string            `gorm:"column:pos" json:"pos"`
	Team       string            `gorm:"column:team" json:"team"`
	Age        int               `gorm:"column:age" json:"age"`
	JerseyNo   int               `gorm:"column:jersey_no" json:"jersey_no"`
	CapHit     string            `gorm:"column:cap_hit" json:"cap_hit"`
	Stats      datatypes.JSONMap `gorm:"column:stats" json:"stats"`
}

// Player is a cleaned pool entry: canonical position, cap hit in
// millions, stats parsed to plain numbers (rate stats de-percented).
type Player struct {
	PlayerID string             `json:"player_id"`
	Name     string             `json:"name"`
	Position positions.Position `json:"position"`
	Team     string             `json:"team"`
	Age      int                `json:"age"`
	JerseyNo int                `json:"jersey_no"`
	Salary   float64            `json:"salary"`
	Stats    map[string]float64 `json:"stats"`
}
