package positions

import "fmt"

// Position is one of the canonical roster roles a drafted player fills.
type Position string

const (
	QB Position = "QB"
	RB Position = "RB"
	WR Position = "WR"
	OL Position = "OL"
	TE Position = "TE"
	DL Position = "DL"
	LB Position = "LB"
	CB Position = "CB"
	S  Position = "S"
	K  Position = "K"
	P  Position = "P"
)

// All lists every canonical position in display order.
var All = []Position{QB, RB, WR, OL, TE, DL, LB, CB, S, K, P}

// synonyms maps the raw labels the scraped data uses onto canonical
// positions. Canonical labels map to themselves so already-clean data
// passes through.
var synonyms = map[string]Position{
	"QB": QB, "RB": RB, "WR": WR, "OL": OL, "TE": TE, "DL": DL,
	"LB": LB, "CB": CB, "S": S, "K": K, "P": P,
	"OLB":   LB,
	"ILB":   LB,
	"MLB":   LB,
	"DT":    DL,
	"DE":    DL,
	"SS":    S,
	"FS":    S,
	"FB":    RB,
	"RB-WR": RB,
	"QB/TE": QB,
	"G":     OL,
	"T":     OL,
	"C":     OL,
	"OT":    OL,
	"DB":    CB,
}

// UnknownPositionError is returned when a raw position label has no
// canonical mapping. It is surfaced rather than dropped so upstream
// data drift gets caught at load time.
type UnknownPositionError struct {
	Raw string
}

func (e *UnknownPositionError) Error() string {
	return fmt.Sprintf("unknown position %q", e.Raw)
}

// Normalize canonicalizes a raw position label.
//
// Long snappers ("LS") are not normalized here: the pool loader drops
// them before normalization ever runs.
func Normalize(raw string) (Position, error) {
	pos, ok := synonyms[raw]
	if !ok {
		return "", &UnknownPositionError{Raw: raw}
	}
	return pos, nil
}
