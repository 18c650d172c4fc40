package main

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gmsim/api-server/internals/pool"
	"github.com/gmsim/api-server/internals/positions"
	"github.com/gmsim/api-server/internals/roster"
)

func testSession(t *testing.T) *roster.Session {
	t.Helper()
	byID := pool.ByID([]pool.Player{
		{PlayerID: "qb1", Name: "QB One", Position: positions.QB, Salary: 20.04},
		{PlayerID: "wr1", Name: "WR One", Position: positions.WR, Salary: 9.96},
	})
	return roster.NewSession(1, 150, byID)
}

func TestBuildRosterViewRoundsBudget(t *testing.T) {
	session := testSession(t)
	session.Ledger.Add("qb1")
	session.Ledger.Add("wr1")

	view := buildRosterView(session)

	// 150 - 20.04 - 9.96 = 120.00, displayed to one decimal
	if view.RemainingBudget != 120.0 {
		t.Errorf("RemainingBudget = %v, want 120.0", view.RemainingBudget)
	}
	if len(view.Members) != 2 {
		t.Fatalf("members = %d, want 2", len(view.Members))
	}
	if view.Members[0].PlayerID != "qb1" {
		t.Errorf("first member = %s, want qb1 (insertion order)", view.Members[0].PlayerID)
	}
	if view.Fit[positions.QB] != positions.Satisfied {
		t.Errorf("QB fit = %s, want satisfied", view.Fit[positions.QB])
	}
	if view.Fit[positions.WR] != positions.Under {
		t.Errorf("WR fit = %s, want under (1 of 3)", view.Fit[positions.WR])
	}
}

func TestRosterErrStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{roster.ErrBudgetExceeded, http.StatusBadRequest},
		{roster.ErrNotOnRoster, http.StatusBadRequest},
		{roster.ErrAlreadyOnRoster, http.StatusBadRequest},
		{roster.ErrUnknownPlayer, http.StatusBadRequest},
		{roster.ErrSessionNotFound, http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := rosterErrStatus(c.err); got != c.want {
			t.Errorf("rosterErrStatus(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}
