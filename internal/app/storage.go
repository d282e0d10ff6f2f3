package app

import (
	"github.com/adanyl0v/go-todo-board/internal/config"
	"github.com/adanyl0v/go-todo-board/internal/seed"
	"github.com/adanyl0v/go-todo-board/internal/services"
	"github.com/adanyl0v/go-todo-board/internal/state"
	"github.com/adanyl0v/go-todo-board/internal/storage"
)

var globalStorage *storage.Store

func MustOpenStorage() {
	cfg := config.Global().Storage

	backend, err := storage.OpenFileBackend(cfg.Path)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("path", cfg.Path).
			Msg("failed to open storage")
		panic(err)
	}

	globalStorage = storage.New(
		globalLogger.With().Str("component", "storage").Logger(),
		backend,
		cfg.ValidateSchema,
	)
	globalLogger.Info().
		Str("path", cfg.Path).
		Msg("opened storage")

	if cfg.SeedDemoData {
		_, err = seed.Seed(globalLogger, globalStorage, false)
		if err != nil {
			panic(err)
		}
	}
}

func mustNewServices() (services.AuthService, services.TaskService) {
	cfg := config.Global()

	hasher, err := services.NewPasswordHasher(cfg.Auth.PasswordHashing)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to create password hasher")
		panic(err)
	}

	authService := services.NewAuthService(
		globalLogger.With().Str("component", "auth").Logger(),
		globalStorage,
		hasher,
		cfg.Auth.TokenIssuer,
		[]byte(cfg.Auth.TokenSigningKey),
		cfg.Auth.TokenTTL,
		cfg.Storage.Latency,
	)
	taskService := services.NewTaskService(
		globalLogger.With().Str("component", "tasks").Logger(),
		globalStorage,
		cfg.Storage.Latency,
	)
	return authService, taskService
}

// mustNewActions builds a state store primed with the persisted token
// and the action creators bound to it.
func mustNewActions() *state.Actions {
	authService, taskService := mustNewServices()
	store := state.NewStore(state.NewState(globalStorage.Token()))
	return state.NewActions(
		globalLogger.With().Str("component", "state").Logger(),
		store,
		authService,
		taskService,
	)
}
