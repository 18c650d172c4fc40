// Package aggregate rolls individual player stat lines up into one
// team-level feature vector comparable to historical team seasons.
package aggregate

import (
	"errors"

	"github.com/gmsim/api-server/internals/pool"
)

// ErrZeroGames means the pool's observed game count is zero, so summed
// stats cannot be projected to a full season. Aggregation fails loudly
// instead of dividing by zero or silently assuming a full season.
var ErrZeroGames = errors.New("observed game count is zero")

// Aggregate builds the team feature vector for a roster. Stats named in
// averaged get the mean over members that actually carry the stat;
// everything else is summed over carriers. Members missing a stat are
// excluded from both numerator and denominator, never counted as zero,
// and a stat nobody carries is absent from the result.
//
// Summed stats are scaled by gamesInSeason/observedGames so a roster
// built from a partial season lines up with full-season training rows.
func Aggregate(members []pool.Player, averaged map[string]bool, observedGames, gamesInSeason int) (map[string]float64, error) {
	if observedGames == 0 {
		return nil, ErrZeroGames
	}
	scale := float64(gamesInSeason) / float64(observedGames)

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, member := range members {
		for name, val := range member.Stats {
			sums[name] += val
			counts[name]++
		}
	}

	features := make(map[string]float64, len(sums))
	for name, sum := range sums {
		if averaged[name] {
			features[name] = sum / float64(counts[name])
		} else {
			features[name] = sum * scale
		}
	}
	return features, nil
}

// AveragedSet turns the configured stat-name list into a lookup set.
func AveragedSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
