package main

import (
	"context"

	"github.com/jhoicas/retailcrm-bff/internal/migrate"
	"github.com/jhoicas/retailcrm-bff/pkg/config"
	"github.com/jhoicas/retailcrm-bff/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	if !cfg.DB.Enabled() {
		log.Fatal().Msg("DATABASE_URL no configurado; el esquema espejo está deshabilitado")
	}

	if err := migrate.Apply(context.Background(), cfg.DB.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}

	log.Info().Msg("migraciones aplicadas")
}
