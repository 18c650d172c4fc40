package main

import (
	"net/http"

	"github.com/gmsim/api-server/internals/pool"
	"github.com/gmsim/api-server/internals/positions"
)

type playerView struct {
	PlayerID string             `json:"player_id"`
	Name     string             `json:"name"`
	Position positions.Position `json:"position"`
	Team     string             `json:"team"`
	Age      int                `json:"age"`
	JerseyNo int                `json:"jersey_no"`
	Salary   float64            `json:"salary"`
	Status   string             `json:"status"`
	Stats    map[string]float64 `json:"stats,omitempty"`
}

// GetPlayers lists the usable pool, optionally filtered by canonical
// position. With a session_id each row carries its roster status so
// the table can color add/remove buttons.
func (app *App) GetPlayers(w http.ResponseWriter, r *http.Request) {
	posFilter := r.URL.Query().Get("position")
	sessionID := r.URL.Query().Get("session_id")
	withStats := r.URL.Query().Get("stats") == "true"

	players, err := app.Pool.LoadPlayers()
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusInternalServerError, IsError: true, Error: err.Error()})
		return
	}

	onRoster := func(string) bool { return false }
	if sessionID != "" {
		session, err := app.Sessions.Get(sessionID)
		if err != nil {
			sendResponse(w, httpResp{Status: rosterErrStatus(err), IsError: true, Error: err.Error()})
			return
		}
		onRoster = session.Ledger.Has
	}

	views := make([]playerView, 0, len(players))
	for _, p := range players {
		if posFilter != "" && string(p.Position) != posFilter {
			continue
		}
		views = append(views, buildPlayerView(p, onRoster(p.PlayerID), withStats))
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: views})
}

func buildPlayerView(p pool.Player, member, withStats bool) playerView {
	view := playerView{
		PlayerID: p.PlayerID,
		Name:     p.Name,
		Position: p.Position,
		Team:     p.Team,
		Age:      p.Age,
		JerseyNo: p.JerseyNo,
		Salary:   roundMoney(p.Salary),
		Status:   "not on-roster",
	}
	if member {
		view.Status = "on-roster"
	}
	if withStats {
		view.Stats = p.Stats
	}
	return view
}
