// Package app assembles the tracker and its collaborators from configuration.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mrwolf/burnout-server/internal/classifier"
	"github.com/mrwolf/burnout-server/internal/config"
	"github.com/mrwolf/burnout-server/internal/db"
	"github.com/mrwolf/burnout-server/internal/handoff"
	"github.com/mrwolf/burnout-server/internal/scheduler"
	"github.com/mrwolf/burnout-server/internal/sentiment"
	"github.com/mrwolf/burnout-server/internal/tracker"
	"github.com/mrwolf/burnout-server/internal/vault"
)

type App struct {
	Config     *config.Config
	DB         *db.DB
	Vault      *vault.Vault
	Classifier *classifier.Classifier
	Tracker    *tracker.Service

	loader *classifier.CachedLoader
	valkey *handoff.ValkeyNotifier
}

// Build opens the database and wires the pipeline. A configured but
// unreachable Valkey server is logged and skipped.
func Build(cfg *config.Config) (*App, error) {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	a := &App{
		Config: cfg,
		DB:     database,
		Vault:  vault.NewVault(cfg.VaultPath),
		loader: classifier.NewCachedLoader(classifier.FileLoader{
			Path: cfg.ModelPath,
			ONNX: classifier.ONNXOptions{
				SharedLibrary: cfg.ONNXLibrary,
				InputName:     cfg.ONNXInputName,
				OutputName:    cfg.ONNXOutputName,
			},
		}),
	}
	a.Classifier = classifier.NewClassifier(a.loader)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.UTC
	}

	contacts := handoff.DefaultDirectory()
	if cfg.ContactsFile != "" {
		contacts, err = handoff.LoadDirectory(cfg.ContactsFile)
		if err != nil {
			database.Close()
			return nil, err
		}
	}

	notifiers := handoff.Multi{handoff.LogNotifier{}}
	if cfg.ValkeyAddr != "" {
		v, err := handoff.NewValkeyNotifier(cfg.ValkeyAddr, cfg.ValkeyPassword, cfg.ValkeyChannel)
		if err != nil {
			slog.Warn("[App] Valkey unavailable, hand-offs will only be logged", slog.String("error", err.Error()))
		} else {
			a.valkey = v
			notifiers = append(notifiers, v)
		}
	}

	a.Tracker = tracker.New(tracker.Options{
		Store:        database,
		Classifier:   a.Classifier,
		Analyzer:     sentiment.New(cfg.Sentiment),
		Notifier:     notifiers,
		Audit:        a.Vault,
		Contacts:     contacts,
		ModelTimeout: cfg.ModelTimeout,
		Location:     loc,
	})

	slog.Info("[App] Pipeline ready",
		slog.String("sentiment", cfg.Sentiment),
		slog.String("model", cfg.ModelPath),
		slog.Int("contacts", len(contacts)),
		slog.Bool("valkey", a.valkey != nil))
	return a, nil
}

// HealthChecks returns the probes the scheduler runs
func (a *App) HealthChecks() []*scheduler.Check {
	return []*scheduler.Check{
		scheduler.NewCheck("database", a.DB.Ping),
		scheduler.NewCheck("model", a.Classifier.Probe),
	}
}

func (a *App) Close() error {
	var errs []error
	if a.valkey != nil {
		a.valkey.Close()
	}
	if err := a.loader.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing model: %w", err))
	}
	if err := classifier.ShutdownRuntime(); err != nil {
		errs = append(errs, fmt.Errorf("stopping onnxruntime: %w", err))
	}
	if err := a.DB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing database: %w", err))
	}
	return errors.Join(errs...)
}
