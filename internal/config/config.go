package config

import (
	"path"

	"github.com/eskrenkovic/trivia-lobby-go/internal/modules/env"

	"go.uber.org/zap"
)

const (
	PortEnv        = "PORT"
	DatabaseUrlEnv = "DATABASE_URL"
	RootPathEnv    = "ROOT_PATH"
)

type Config struct {
	Logger *zap.Logger

	Port int

	// DatabaseURL is optional - without it the server runs against
	// the in-memory session store.
	DatabaseURL    string
	MigrationsPath string
}

func Load() (Config, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return Config{}, err
	}

	port := env.MustGetInt(PortEnv)
	dbURL := env.GetStringOrDefault(DatabaseUrlEnv, "")
	rootPath := env.GetStringOrDefault(RootPathEnv, ".")

	return Config{
		Logger:         logger,
		Port:           port,
		DatabaseURL:    dbURL,
		MigrationsPath: path.Join(rootPath, "db", "migrations"),
	}, nil
}
