package projection

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/gmsim/api-server/pkg/kvstore"
)

// corpus rows sit exactly on wl = 0.3 + 0.02*A - 0.01*B, so the fit
// recovers the relation and predictions are checkable by hand.
func linearCorpus() []TeamSeason {
	points := []struct{ a, b float64 }{
		{10, 2}, {12, 4}, {8, 6}, {14, 8}, {9, 5}, {11, 3}, {13, 7},
	}
	corpus := make([]TeamSeason, 0, len(points))
	for i, p := range points {
		corpus = append(corpus, TeamSeason{
			Team:       "T",
			Season:     string(rune('A' + i)),
			Games:      16,
			WinLossPct: 0.3 + 0.02*p.a - 0.01*p.b,
			Stats:      map[string]float64{"A": p.a, "B": p.b},
		})
	}
	return corpus
}

func testService() *Service {
	return &Service{GamesInSeason: 16, MinCarriers: 1}
}

func TestProjectWinsExactFit(t *testing.T) {
	s := testService()

	// 0.3 + 0.02*15 - 0.01*5 = 0.55 -> 8.8 games -> 9 wins
	candidate := map[string]float64{"A": 15, "B": 5}
	wins, err := s.projectFromCorpus(context.Background(), linearCorpus(), candidate)
	if err != nil {
		t.Fatalf("projectFromCorpus: %v", err)
	}
	if wins != 9 {
		t.Errorf("wins = %d, want 9", wins)
	}
}

func TestPartialSeasonExcludedFromTraining(t *testing.T) {
	s := testService()

	corpus := append(linearCorpus(), TeamSeason{
		Team: "X", Season: "partial", Games: 11,
		WinLossPct: 1.0, // off the plane; would corrupt the fit
		Stats:      map[string]float64{"A": 10, "B": 2},
	})

	wins, err := s.projectFromCorpus(context.Background(), corpus, map[string]float64{"A": 15, "B": 5})
	if err != nil {
		t.Fatalf("projectFromCorpus: %v", err)
	}
	if wins != 9 {
		t.Errorf("wins = %d, want 9 (partial season must not train)", wins)
	}
}

func TestCandidateOnlyStatDroppedBeforeScoring(t *testing.T) {
	s := testService()

	candidate := map[string]float64{"A": 15, "B": 5, "Zzz": 99}
	wins, err := s.projectFromCorpus(context.Background(), linearCorpus(), candidate)
	if err != nil {
		t.Fatalf("projectFromCorpus: %v", err)
	}
	if wins != 9 {
		t.Errorf("wins = %d, want 9 (unknown stat dropped)", wins)
	}
}

func TestCorpusColumnNoRosterProduces(t *testing.T) {
	s := testService()

	// every historical row carries C, but the candidate cannot
	// produce it; C must leave the model, not zero-fill the roster
	corpus := linearCorpus()
	for i := range corpus {
		corpus[i].Stats["C"] = float64(100 + i)
	}

	wins, err := s.projectFromCorpus(context.Background(), corpus, map[string]float64{"A": 15, "B": 5})
	if err != nil {
		t.Fatalf("projectFromCorpus: %v", err)
	}
	if wins != 9 {
		t.Errorf("wins = %d, want 9", wins)
	}
}

func TestNoSharedColumns(t *testing.T) {
	s := testService()

	_, err := s.projectFromCorpus(context.Background(), linearCorpus(), map[string]float64{"Zzz": 1})
	if !errors.Is(err, ErrFeatureMismatch) {
		t.Errorf("err = %v, want ErrFeatureMismatch", err)
	}
}

func TestProjectionCancelled(t *testing.T) {
	s := testService()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.projectFromCorpus(ctx, linearCorpus(), map[string]float64{"A": 15, "B": 5})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestPredictRefusesMissingFeature(t *testing.T) {
	model, err := fitLinear([]string{"A", "B"}, []map[string]float64{
		{"A": 1, "B": 1}, {"A": 2, "B": 1}, {"A": 3, "B": 2}, {"A": 4, "B": 5},
	}, []float64{0.2, 0.3, 0.4, 0.5})
	if err != nil {
		t.Fatalf("fitLinear: %v", err)
	}

	_, err = model.predict(map[string]float64{"A": 1})
	if !errors.Is(err, ErrFeatureMismatch) {
		t.Errorf("err = %v, want ErrFeatureMismatch", err)
	}
}

func TestFitUnderdetermined(t *testing.T) {
	_, err := fitLinear([]string{"A", "B"}, []map[string]float64{
		{"A": 1, "B": 1}, {"A": 2, "B": 1},
	}, []float64{0.2, 0.3})
	if err == nil {
		t.Fatal("fit with fewer rows than coefficients should fail")
	}
}

func TestWinsFromFractionClamped(t *testing.T) {
	cases := []struct {
		frac float64
		want int
	}{
		{0.55, 9},
		{0.5, 8},
		{1.5, 16},
		{-0.2, 0},
		{0, 0},
		{1, 16},
	}
	for _, c := range cases {
		if got := WinsFromFraction(c.frac, 16); got != c.want {
			t.Errorf("WinsFromFraction(%v) = %d, want %d", c.frac, got, c.want)
		}
	}
}

func TestLoadCorpusFromCache(t *testing.T) {
	kv := kvstore.NewMemory()
	data, err := json.Marshal(linearCorpus())
	if err != nil {
		t.Fatal(err)
	}
	if err := kv.Set(corpusCacheKey, string(data)); err != nil {
		t.Fatal(err)
	}

	s := &Service{KV: kv, GamesInSeason: 16, MinCarriers: 1}
	corpus, err := s.LoadCorpus()
	if err != nil {
		t.Fatalf("LoadCorpus: %v", err)
	}
	if len(corpus) != 7 {
		t.Errorf("corpus rows = %d, want 7", len(corpus))
	}
	if corpus[0].Stats["A"] != 10 {
		t.Errorf("round-tripped stat A = %v, want 10", corpus[0].Stats["A"])
	}
}
