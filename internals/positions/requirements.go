package positions

// Requirement is the inclusive range of players a complete roster
// carries at one position.
type Requirement struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// DefaultRequirements is the standard 22-man lineup plus kicker and
// punter. Loaded once, never mutated.
var DefaultRequirements = map[Position]Requirement{
	QB: {Min: 1, Max: 1},
	RB: {Min: 1, Max: 1},
	WR: {Min: 3, Max: 3},
	OL: {Min: 5, Max: 5},
	TE: {Min: 1, Max: 1},
	DL: {Min: 4, Max: 5},
	LB: {Min: 2, Max: 3},
	CB: {Min: 2, Max: 3},
	S:  {Min: 1, Max: 2},
	K:  {Min: 1, Max: 1},
	P:  {Min: 1, Max: 1},
}

// FitStatus classifies a position's headcount against its requirement.
type FitStatus string

const (
	Under     FitStatus = "under"
	Satisfied FitStatus = "satisfied"
	Over      FitStatus = "over"
)

// EvaluateFit compares per-position counts against the requirement
// table. Positions absent from counts are evaluated at zero, so the
// result always covers the whole table.
func EvaluateFit(counts map[Position]int, table map[Position]Requirement) map[Position]FitStatus {
	fit := make(map[Position]FitStatus, len(table))
	for pos, req := range table {
		count := counts[pos]
		switch {
		case count < req.Min:
			fit[pos] = Under
		case count > req.Max:
			fit[pos] = Over
		default:
			fit[pos] = Satisfied
		}
	}
	return fit
}
