package main

import (
	"errors"
	"net/http"

	"github.com/gmsim/api-server/internals/aggregate"
	"github.com/gmsim/api-server/internals/projection"
)

// ProjectWins aggregates the session roster into a team feature vector
// and scores it against the historical model. Errors abort only this
// projection; the roster is untouched either way.
func (app *App) ProjectWins(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "session_id is required"})
		return
	}

	session, err := app.Sessions.Get(sessionID)
	if err != nil {
		sendResponse(w, httpResp{Status: rosterErrStatus(err), IsError: true, Error: err.Error()})
		return
	}

	averaged := aggregate.AveragedSet(app.Cfg.GetStringSlice("gm.averaged_stats"))
	features, err := aggregate.Aggregate(
		session.Ledger.Members(),
		averaged,
		app.Cfg.GetInt("gm.observed_games"),
		app.Cfg.GetInt("gm.games_in_season"),
	)
	if err != nil {
		sendResponse(w, httpResp{Status: projectionErrStatus(err), IsError: true, Error: err.Error()})
		return
	}

	// a newer request for this session supersedes the in-flight one
	ctx := session.BeginProjection(r.Context())
	wins, err := app.Projection.ProjectWins(ctx, features)
	if err != nil {
		sendResponse(w, httpResp{Status: projectionErrStatus(err), IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{
		"wins":            wins,
		"games_in_season": app.Cfg.GetInt("gm.games_in_season"),
	}})
}

func projectionErrStatus(err error) int {
	if errors.Is(err, aggregate.ErrZeroGames) || errors.Is(err, projection.ErrFeatureMismatch) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
