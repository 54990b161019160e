package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/abhisek/sqlchallenge/internal/challenge"
	"github.com/abhisek/sqlchallenge/internal/config"
	"github.com/abhisek/sqlchallenge/internal/hint"
	"github.com/abhisek/sqlchallenge/internal/llm"
	"github.com/abhisek/sqlchallenge/internal/provision"
	"github.com/abhisek/sqlchallenge/internal/schema"
	"github.com/abhisek/sqlchallenge/internal/sqlexec"
	"github.com/abhisek/sqlchallenge/internal/store"
)

// practiceEnv holds the collaborators every practice surface shares.
type practiceEnv struct {
	cfg        *config.Config
	store      *store.Store
	exec       *sqlexec.Executor
	prov       *provision.Provisioner
	registry   *challenge.Registry
	topics     []schema.Topic
	categories []challenge.Category

	// isolate runs learner statements in rolled-back transactions. Set
	// when several sessions share the practice database.
	isolate bool
}

// openStore opens the history database named by cfg.
func openStore(cfg *config.Config) (*store.Store, error) {
	path, err := cfg.StorePath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// openExecutor connects to the configured practice database.
func openExecutor(ctx context.Context, cfg *config.Config) (*sqlexec.Executor, error) {
	dsn, err := cfg.PracticeDSN()
	if err != nil {
		return nil, fmt.Errorf("resolve practice DSN: %w", err)
	}
	exec, err := sqlexec.Open(ctx, sqlexec.Config{Driver: cfg.Database.Driver, DSN: dsn})
	if err != nil {
		return nil, fmt.Errorf("open practice database: %w", err)
	}
	return exec, nil
}

func openPracticeEnv(ctx context.Context, cfg *config.Config) (*practiceEnv, error) {
	topics, err := cfg.Topics()
	if err != nil {
		return nil, err
	}
	categories, err := cfg.Categories()
	if err != nil {
		return nil, err
	}

	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	exec, err := openExecutor(ctx, cfg)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	registry := challenge.DefaultRegistry()
	if missing := registry.Missing(topics, categories); len(missing) > 0 {
		slog.Warn("registry does not cover every configured pair", "missing", len(missing))
	}

	return &practiceEnv{
		cfg:        cfg,
		store:      st,
		exec:       exec,
		prov:       provision.New(exec, provision.Options{Rows: cfg.Practice.Rows, Seed: cfg.Practice.Seed}),
		registry:   registry,
		topics:     topics,
		categories: categories,
	}, nil
}

func (e *practiceEnv) Close() {
	if err := e.exec.Close(); err != nil {
		slog.Warn("close practice database", "error", err)
	}
	if err := e.store.Close(); err != nil {
		slog.Warn("close store", "error", err)
	}
}

// newSession builds a session limited to topics and categories. Empty
// filters fall back to the configured ones.
func (e *practiceEnv) newSession(topics []schema.Topic, categories []challenge.Category) *challenge.Session {
	if len(topics) == 0 {
		topics = e.topics
	}
	if len(categories) == 0 {
		categories = e.categories
	}
	seed := e.cfg.Practice.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	var exec challenge.Executor = e.exec
	if e.isolate {
		exec = sqlexec.Isolated{Executor: e.exec}
	}
	return challenge.NewSession(challenge.SessionConfig{
		Selector:   challenge.NewSelector(e.registry, e.prov, challenge.NewRand(seed)),
		Validator:  challenge.NewValidator(exec),
		Executor:   exec,
		Events:     e.store.EventRepo(),
		Topics:     topics,
		Categories: categories,
	})
}

// hintService builds the hint service. Without LLM credentials it returns
// a disabled service.
func (e *practiceEnv) hintService(ctx context.Context) *hint.Service {
	provider, err := llm.NewProviderFromEnv(ctx, e.store.EventRepo())
	if err != nil {
		if !errors.Is(err, llm.ErrNotConfigured) {
			slog.Warn("LLM provider unavailable", "error", err)
		}
		return hint.NewService(nil, hint.DefaultConfig())
	}
	slog.Info("hints enabled", "model", provider.ModelID())
	return hint.NewService(provider, hint.DefaultConfig())
}
