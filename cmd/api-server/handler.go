package main

import (
	"net/http"
)

func (app *App) initHandlers() {
	app.R.Get("/ws", app.handleWebSocket)

	app.R.Post("/auth/login", app.Login)
	app.R.Post("/auth/signup", app.SignUp)
	app.R.Post("/auth/logout", app.Middleware(http.HandlerFunc(app.Logout)))

	app.R.Get("/players", app.Middleware(http.HandlerFunc(app.GetPlayers)))

	app.R.Post("/sessions/create", app.Middleware(http.HandlerFunc(app.CreateSession)))
	app.R.Delete("/sessions/close", app.Middleware(http.HandlerFunc(app.CloseSession)))

	app.R.Get("/roster", app.Middleware(http.HandlerFunc(app.GetRoster)))
	app.R.Post("/roster/add", app.Middleware(http.HandlerFunc(app.AddPlayer)))
	app.R.Post("/roster/remove", app.Middleware(http.HandlerFunc(app.RemovePlayer)))
	app.R.Get("/roster/fit", app.Middleware(http.HandlerFunc(app.GetRosterFit)))
	app.R.Get("/roster/projection", app.Middleware(http.HandlerFunc(app.ProjectWins)))

	app.R.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("I am Healthy"))
	})
}
