package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gmsim/api-server/internals/positions"
	"github.com/gmsim/api-server/internals/roster"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

type rosterMember struct {
	PlayerID string             `json:"player_id"`
	Name     string             `json:"name"`
	Position positions.Position `json:"position"`
	Team     string             `json:"team"`
	Salary   float64            `json:"salary"`
}

type rosterView struct {
	SessionID       string                                     `json:"session_id"`
	SalaryCap       float64                                    `json:"salary_cap"`
	RemainingBudget float64                                    `json:"remaining_budget"`
	Members         []rosterMember                             `json:"members"`
	Fit             map[positions.Position]positions.FitStatus `json:"fit"`
}

func buildRosterView(session *roster.Session) rosterView {
	members := session.Ledger.Members()
	view := rosterView{
		SessionID:       session.ID,
		SalaryCap:       session.Ledger.Cap(),
		RemainingBudget: roundMoney(session.Ledger.Remaining()),
		Members:         make([]rosterMember, 0, len(members)),
		Fit:             positions.EvaluateFit(session.Ledger.PositionCounts(), positions.DefaultRequirements),
	}
	for _, p := range members {
		view.Members = append(view.Members, rosterMember{
			PlayerID: p.PlayerID,
			Name:     p.Name,
			Position: p.Position,
			Team:     p.Team,
			Salary:   roundMoney(p.Salary),
		})
	}
	return view
}

func rosterErrStatus(err error) int {
	switch {
	case errors.Is(err, roster.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, roster.ErrBudgetExceeded),
		errors.Is(err, roster.ErrNotOnRoster),
		errors.Is(err, roster.ErrAlreadyOnRoster),
		errors.Is(err, roster.ErrUnknownPlayer):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (app *App) CreateSession(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int)

	session, err := app.Sessions.Create(userID)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusInternalServerError, IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusCreated, Data: buildRosterView(session)})
}

func (app *App) CloseSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "session_id is required"})
		return
	}

	if err := app.Sessions.Close(sessionID); err != nil {
		sendResponse(w, httpResp{Status: rosterErrStatus(err), IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"message": "Session closed"}})
}

func (app *App) GetRoster(w http.ResponseWriter, r *http.Request) {
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

	sendResponse(w, httpResp{Status: http.StatusOK, Data: buildRosterView(session)})
}

// AddPlayer handles the add command. A cap-breaking add comes back as
// an error with the roster unchanged; the UI renders it as a no-op.
func (app *App) AddPlayer(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	playerID := r.URL.Query().Get("player_id")
	if sessionID == "" || playerID == "" {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "session_id and player_id are required"})
		return
	}

	session, err := app.Sessions.AddPlayer(sessionID, playerID)
	if err != nil {
		sendResponse(w, httpResp{Status: rosterErrStatus(err), IsError: true, Error: err.Error()})
		return
	}

	view := buildRosterView(session)
	app.broadcastRoster(view)
	sendResponse(w, httpResp{Status: http.StatusOK, Data: view})
}

// RemovePlayer handles the remove command.
func (app *App) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	playerID := r.URL.Query().Get("player_id")
	if sessionID == "" || playerID == "" {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "session_id and player_id are required"})
		return
	}

	session, err := app.Sessions.RemovePlayer(sessionID, playerID)
	if err != nil {
		sendResponse(w, httpResp{Status: rosterErrStatus(err), IsError: true, Error: err.Error()})
		return
	}

	view := buildRosterView(session)
	app.broadcastRoster(view)
	sendResponse(w, httpResp{Status: http.StatusOK, Data: view})
}

// GetRosterFit returns only the per-position fit statuses, for the
// field visualization.
func (app *App) GetRosterFit(w http.ResponseWriter, r *http.Request) {
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

	fit := positions.EvaluateFit(session.Ledger.PositionCounts(), positions.DefaultRequirements)
	sendResponse(w, httpResp{Status: http.StatusOK, Data: fit})
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WSDetails struct {
	SessionID string
}

// handleWebSocket keeps a client subscribed to one session's roster
// updates until it hangs up.
func (app *App) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "Could not open websocket connection", http.StatusBadRequest)
		return
	}

	// defer the connection close and remove the client from the list
	defer func() {
		conn.Close()
		app.ClientsM.Lock()
		delete(app.WS, conn)
		app.ClientsM.Unlock()
	}()

	app.ClientsM.Lock()
	app.WS[conn] = WSDetails{SessionID: sessionID}
	app.ClientsM.Unlock()

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}
}

// broadcastRoster pushes the post-mutation roster to every client
// watching that session.
func (app *App) broadcastRoster(view rosterView) {
	data, err := json.Marshal(view)
	if err != nil {
		logrus.WithError(err).Error("could not marshal roster update")
		return
	}

	app.ClientsM.Lock()
	for conn, details := range app.WS {
		if details.SessionID != view.SessionID {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
		}
	}
	app.ClientsM.Unlock()
}
