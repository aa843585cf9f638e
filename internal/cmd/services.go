package main

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"github.com/joelcondh/burien-soccer/internal/profile"
	"github.com/joelcondh/burien-soccer/internal/roster"
	"github.com/joelcondh/burien-soccer/internal/teams"
)

type Services struct {
	Profiles *profile.App
	Roster   *roster.App
}

func setupServices(pool *pgxpool.Pool, teamsCfg teams.Config) *Services {
	clock := clockwork.NewRealClock()

	// Database layer -> Repository layer -> App layer
	profileRepo := profile.NewRepository(pool)
	profileApp := profile.NewApp(profileRepo, clock)

	rosterRepo := roster.NewRepository(pool)
	rosterApp := roster.NewApp(rosterRepo, profileApp, teamsCfg, clock)

	return &Services{
		Profiles: profileApp,
		Roster:   rosterApp,
	}
}
