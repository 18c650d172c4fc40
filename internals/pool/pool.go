package pool

import (
	"encoding/json"
	"fmt"

	"github.com/gmsim/api-server/internals/positions"
	"github.com/gmsim/api-server/pkg/kvstore"

	"gorm.io/gorm"
)

const poolCacheKey = "pool_players"

type Service struct {
	KV kvstore.KVStore
	DB *gorm.DB
}

func New(kv kvstore.KVStore, db *gorm.DB) *Service {
	return &Service{
		KV: kv,
		DB: db,
	}
}

// Clean turns scraped rows into the usable pool. Long snappers and
// players without a cap hit are dropped here, once, before any roster
// logic runs. An unmapped position aborts the whole load: partially
// cleaned data is worse than no data.
func Clean(rows []RawPlayer) ([]Player, error) {
	players := make([]Player, 0, len(rows))
	for _, row := range rows {
		if row.Pos == "LS" {
			continue
		}
		salary, ok := ParseSalary(row.CapHit)
		if !ok {
			continue
		}
		pos, err := positions.Normalize(row.Pos)
		if err != nil {
			return nil, fmt.Errorf("player %s: %w", row.PlayerID, err)
		}

		stats := make(map[string]float64, len(row.Stats))
		for name, raw := range row.Stats {
			if val, ok := ParseStatValue(raw); ok {
				stats[name] = val
			}
		}

		players = append(players, Player{
			PlayerID: row.PlayerID,
			Name:     row.PlayerName,
			Position: pos,
			Team:     row.Team,
			Age:      row.Age,
			JerseyNo: row.JerseyNo,
			Salary:   salary,
			Stats:    stats,
		})
	}
	return players, nil
}

// LoadPlayers returns the cleaned pool, from cache when warm, from the
// players table otherwise.
func (s *Service) LoadPlayers() ([]Player, error) {
	cached, err := s.KV.Get(poolCacheKey)
	if err == nil {
		var players []Player
		if err := json.Unmarshal([]byte(cached), &players); err == nil {
			return players, nil
		}
		// bad cache entry, fall through to the table
	} else if err != kvstore.ErrNotFound {
		return nil, err
	}

	var rows []RawPlayer
	if err := s.DB.Table("players").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("error fetching players: %v", err)
	}

	players, err := Clean(rows)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(players)
	if err != nil {
		return nil, err
	}
	if err := s.KV.Set(poolCacheKey, string(data)); err != nil {
		return nil, fmt.Errorf("error caching players: %v", err)
	}

	return players, nil
}

// ByID indexes the pool by player id for keyed lookup.
func ByID(players []Player) map[string]Player {
	byID := make(map[string]Player, len(players))
	for _, p := range players {
		byID[p.PlayerID] = p
	}
	return byID
}
