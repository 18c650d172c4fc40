package roster

import (
	"errors"

	"github.com/gmsim/api-server/internals/pool"
	"github.com/gmsim/api-server/internals/positions"
)

var (
	// ErrBudgetExceeded rejects an add that would push the remaining
	// budget below zero. The roster is left untouched.
	ErrBudgetExceeded = errors.New("salary cap exceeded")
	// ErrNotOnRoster rejects a remove of a player who is not a member.
	ErrNotOnRoster = errors.New("player is not on the roster")
	// ErrAlreadyOnRoster rejects a second add of a current member.
	ErrAlreadyOnRoster = errors.New("player is already on the roster")
	// ErrUnknownPlayer rejects ids that are not in the usable pool.
	ErrUnknownPlayer = errors.New("player is not in the pool")
)

// Ledger is the membership set for one GM session. It owns the budget
// invariant: remaining = cap - sum(member salaries), never negative
// after a successful mutation. Amounts are full-precision millions;
// rounding happens only at the presentation boundary.
type Ledger struct {
	cap       float64
	remaining float64
	byID      map[string]pool.Player
	order     []string
	members   map[string]bool
}

// NewLedger starts an empty roster against the given cap, drawing
// players from the pool index by id.
func NewLedger(cap float64, byID map[string]pool.Player) *Ledger {
	return &Ledger{
		cap:       cap,
		remaining: cap,
		byID:      byID,
		members:   make(map[string]bool),
	}
}

// Add puts a player on the roster, debiting their salary. The budget
// check and the commit are one step: a rejected add changes nothing.
func (l *Ledger) Add(playerID string) error {
	player, ok := l.byID[playerID]
	if !ok {
		return ErrUnknownPlayer
	}
	if l.members[playerID] {
		return ErrAlreadyOnRoster
	}
	candidate := l.remaining - player.Salary
	if candidate < 0 {
		return ErrBudgetExceeded
	}
	l.remaining = candidate
	l.members[playerID] = true
	l.order = append(l.order, playerID)
	return nil
}

// Remove takes a player off the roster and credits their salary back.
// Re-adding later is a fresh Add against the then-current budget.
func (l *Ledger) Remove(playerID string) error {
	if !l.members[playerID] {
		return ErrNotOnRoster
	}
	delete(l.members, playerID)
	for i, id := range l.order {
		if id == playerID {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	l.remaining += l.byID[playerID].Salary
	return nil
}

// Members returns the current roster in insertion order.
func (l *Ledger) Members() []pool.Player {
	members := make([]pool.Player, 0, len(l.order))
	for _, id := range l.order {
		members = append(members, l.byID[id])
	}
	return members
}

// Has reports whether a player is currently on the roster.
func (l *Ledger) Has(playerID string) bool {
	return l.members[playerID]
}

// Remaining is the uncommitted budget in millions, full precision.
func (l *Ledger) Remaining() float64 {
	return l.remaining
}

// Cap is the fixed salary cap the session was created with.
func (l *Ledger) Cap() float64 {
	return l.cap
}

// PositionCounts tallies members per canonical position for the fit
// evaluator.
func (l *Ledger) PositionCounts() map[positions.Position]int {
	counts := make(map[positions.Position]int)
	for _, id := range l.order {
		counts[l.byID[id].Position]++
	}
	return counts
}
