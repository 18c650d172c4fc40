package projection

import (
	"github.com/gmsim/api-server/internals/pool"

	"gorm.io/datatypes"
)

// RawTeamSeason is one historical row from the team_seasons table.
// Games distinguishes complete seasons from the in-progress one.
type RawTeamSeason struct {
	Team       string            `gorm:"column:team" json:"team"`
	Season     string            `gorm:"column:season" json:"season"`
	Games      int               `gorm:"column:games" json:"games"`
	WinLossPct float64           `gorm:"column:wl_pct" json:"wl_pct"`
	Stats      datatypes.JSONMap `gorm:"column:stats" json:"stats"`
}

// TeamSeason is a cleaned historical row: stats parsed to numbers with
// the same percent handling the player pool gets.
type TeamSeason struct {
	Team       string             `json:"team"`
	Season     string             `json:"season"`
	Games      int                `json:"games"`
	WinLossPct float64            `json:"wl_pct"`
	Stats      map[string]float64 `json:"stats"`
}

func cleanTeamSeason(row RawTeamSeason) TeamSeason {
	stats := make(map[string]float64, len(row.Stats))
	for name, raw := range row.Stats {
		if val, ok := pool.ParseStatValue(raw); ok {
			stats[name] = val
		}
	}
	return TeamSeason{
		Team:       row.Team,
		Season:     row.Season,
		Games:      row.Games,
		WinLossPct: row.WinLossPct,
		Stats:      stats,
	}
}
