package main

import (
	"github.com/gmsim/api-server/internals/pool"
	"github.com/gmsim/api-server/internals/projection"
	"github.com/gmsim/api-server/internals/roster"
	"github.com/gmsim/api-server/pkg/kvstore"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func failOnError(err error, msg string) {
	if err != nil {
		logrus.Panicf("%s: %s", msg, err)
	}
}

func (app *App) initDB() (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(app.Cfg.GetString("db.dsn")), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func (app *App) initKVStore() {
	app.KVStore = kvstore.NewRedis(
		app.Cfg.GetString("redis.addr"),
		app.Cfg.GetString("redis.password"),
		app.Cfg.GetInt("redis.db"),
	)
}

func (app *App) initServices() {
	app.Pool = pool.New(app.KVStore, app.DB)
	app.Sessions = roster.NewManager(app.KVStore, app.DB, app.Pool, app.Cfg.GetFloat64("gm.salary_cap"))
	app.Projection = projection.New(app.KVStore, app.DB, app.Cfg.GetInt("gm.games_in_season"))
}
