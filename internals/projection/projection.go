// Package projection fits a linear model over historical team seasons
// and scores roster-derived feature vectors into a season win count.
package projection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/gmsim/api-server/pkg/kvstore"

	"gorm.io/gorm"
)

const corpusCacheKey = "team_seasons"

// ErrFeatureMismatch means the candidate vector and the training
// column set diverged after intersection. The projection attempt is
// aborted; roster state is untouched.
var ErrFeatureMismatch = errors.New("feature set mismatch between training and scoring")

type Service struct {
	KV kvstore.KVStore
	DB *gorm.DB

	GamesInSeason int
	// MinCarriers is the number of training rows that must carry a
	// stat for it to become a model column. Mirrors the corpus
	// cleaning threshold used when the historical table was built.
	MinCarriers int
}

func New(kv kvstore.KVStore, db *gorm.DB, gamesInSeason int) *Service {
	return &Service{
		KV:            kv,
		DB:            db,
		GamesInSeason: gamesInSeason,
		MinCarriers:   10,
	}
}

// LoadCorpus returns the historical team-season rows, cached after the
// first read since the corpus is read-only at projection time.
func (s *Service) LoadCorpus() ([]TeamSeason, error) {
	cached, err := s.KV.Get(corpusCacheKey)
	if err == nil {
		var corpus []TeamSeason
		if err := json.Unmarshal([]byte(cached), &corpus); err == nil {
			return corpus, nil
		}
	} else if err != kvstore.ErrNotFound {
		return nil, err
	}

	var rows []RawTeamSeason
	if err := s.DB.Table("team_seasons").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("error fetching team seasons: %v", err)
	}

	corpus := make([]TeamSeason, 0, len(rows))
	for _, row := range rows {
		corpus = append(corpus, cleanTeamSeason(row))
	}

	data, err := json.Marshal(corpus)
	if err != nil {
		return nil, err
	}
	if err := s.KV.Set(corpusCacheKey, string(data)); err != nil {
		return nil, fmt.Errorf("error caching team seasons: %v", err)
	}
	return corpus, nil
}

// ProjectWins fits the model and scores the candidate vector as one
// cancellable unit of work.
func (s *Service) ProjectWins(ctx context.Context, candidate map[string]float64) (int, error) {
	corpus, err := s.LoadCorpus()
	if err != nil {
		return 0, err
	}
	return s.projectFromCorpus(ctx, corpus, candidate)
}

func (s *Service) projectFromCorpus(ctx context.Context, corpus []TeamSeason, candidate map[string]float64) (int, error) {
	// Partial seasons would pair full-season stat totals with a
	// mid-season win rate, so they never train the model.
	training := make([]TeamSeason, 0, len(corpus))
	for _, row := range corpus {
		if row.Games >= s.GamesInSeason {
			training = append(training, row)
		}
	}
	if len(training) == 0 {
		return 0, fmt.Errorf("no complete seasons in training corpus")
	}

	features := s.selectFeatures(training, candidate)
	if len(features) == 0 {
		return 0, fmt.Errorf("%w: no shared columns", ErrFeatureMismatch)
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	rows := make([]map[string]float64, len(training))
	labels := make([]float64, len(training))
	for i, row := range training {
		rows[i] = row.Stats
		labels[i] = row.WinLossPct
	}
	model, err := fitLinear(features, rows, labels)
	if err != nil {
		return 0, err
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	pred, err := model.predict(candidate)
	if err != nil {
		return 0, err
	}
	return WinsFromFraction(pred, s.GamesInSeason), nil
}

// selectFeatures picks the model columns: stats carried by enough
// training rows, intersected with what the candidate roster actually
// supplies. Corpus columns no roster can produce are excluded from
// training rather than zero-filled into the candidate, and candidate
// stats the corpus never saw are dropped before scoring.
func (s *Service) selectFeatures(training []TeamSeason, candidate map[string]float64) []string {
	carriers := make(map[string]int)
	for _, row := range training {
		for name := range row.Stats {
			carriers[name]++
		}
	}

	features := make([]string, 0, len(carriers))
	for name, count := range carriers {
		if count < s.MinCarriers {
			continue
		}
		if _, ok := candidate[name]; !ok {
			continue
		}
		features = append(features, name)
	}
	sort.Strings(features)
	return features
}

// WinsFromFraction converts a predicted win-loss percentage into a
// whole-season win count, clamped to what a season can hold no matter
// what the regression produced.
func WinsFromFraction(frac float64, gamesInSeason int) int {
	wins := int(math.Round(frac * float64(gamesInSeason)))
	if wins < 0 {
		wins = 0
	}
	if wins > gamesInSeason {
		wins = gamesInSeason
	}
	return wins
}
