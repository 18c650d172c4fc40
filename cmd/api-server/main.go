package main

import (
	"net/http"
	"sync"

	"github.com/gmsim/api-server/internals/pool"
	"github.com/gmsim/api-server/internals/projection"
	"github.com/gmsim/api-server/internals/roster"
	"github.com/gmsim/api-server/pkg/conf"
	"github.com/gmsim/api-server/pkg/kvstore"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type App struct {
	DB         *gorm.DB
	R          *chi.Mux
	WS         map[*websocket.Conn]WSDetails
	ClientsM   sync.Mutex
	KVStore    kvstore.KVStore
	Cfg        *viper.Viper
	Pool       *pool.Service
	Sessions   *roster.Manager
	Projection *projection.Service
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	app := &App{
		WS:  make(map[*websocket.Conn]WSDetails),
		Cfg: conf.Config("."),
	}

	db, err := app.initDB()
	failOnError(err, "Failed to connect to Postgres")

	r := chi.NewRouter()
	// CORS middleware configuration
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{app.Cfg.GetString("server.cors_origin")},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)

	app.DB = db
	app.R = r

	app.initKVStore()
	app.initServices()
	app.initHandlers()

	addr := app.Cfg.GetString("server.addr")
	logrus.WithField("addr", addr).Info("GM simulator API listening")
	if err := http.ListenAndServe(addr, r); err != nil {
		logrus.Fatal(err)
	}
}
