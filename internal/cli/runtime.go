package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rolodex-cli/rolodex/internal/app"
	"github.com/rolodex-cli/rolodex/internal/config"
	"github.com/rolodex-cli/rolodex/internal/contact"
	logpkg "github.com/rolodex-cli/rolodex/internal/log"
	"github.com/rolodex-cli/rolodex/internal/storage"
)

// Overridable in tests so commands can run against a stub service.
var (
	loadConfigFn = config.Load
	openStoreFn  = storage.Open
)

// contactService is the slice of app.ContactService the commands and the
// interactive menu need; tests drive them with a stub.
type contactService interface {
	Add(ctx context.Context, name, email, phone string) (int64, error)
	ImportFile(ctx context.Context, path string) (app.ImportReport, error)
	List(ctx context.Context) ([]contact.Contact, error)
	Find(ctx context.Context, field storage.Field, value string) (contact.Contact, error)
	UpdatePhone(ctx context.Context, field storage.Field, value, phone string) error
	Delete(ctx context.Context, field storage.Field, value string) error
}

type globalOptions struct {
	ConfigPath string
	JSON       bool
	Verbose    bool
}

type commandDeps struct {
	in      io.Reader
	out     io.Writer
	globals *globalOptions
}

// withService loads configuration, opens the store (fatal on failure, per
// the two-tier error model), and guarantees the connection is closed once
// the callback returns.
func withService(ctx context.Context, deps commandDeps, fn func(context.Context, contactService) error) error {
	loadOpts := config.LoadOptions{}
	if deps.globals != nil {
		if path := strings.TrimSpace(deps.globals.ConfigPath); path != "" {
			loadOpts.ConfigPath = path
		}
		if deps.globals.Verbose {
			level := "debug"
			loadOpts.Flags.LogLevel = &level
		}
	}

	cfg, err := loadConfigFn(loadOpts)
	if err != nil {
		return mapCommandError(fmt.Errorf("load config: %w", err))
	}

	logger, logCloser, err := logpkg.New(logpkg.Options{
		Level:     cfg.Logging.Level,
		File:      cfg.Logging.File,
		MaxSizeMB: cfg.Logging.MaxSizeMB,
		MaxFiles:  cfg.Logging.MaxFiles,
	})
	if err != nil {
		return mapCommandError(fmt.Errorf("init logging: %w", err))
	}
	defer logCloser.Close()

	store, err := openStoreFn(ctx, storage.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Database: cfg.Database.Name,
	})
	if err != nil {
		return mapCommandError(fmt.Errorf("connect database: %w", err))
	}
	defer store.Close()

	logger.Debug("store opened",
		slog.String("host", cfg.Database.Host),
		slog.Int("port", cfg.Database.Port),
		slog.String("database", cfg.Database.Name),
	)

	return mapCommandError(fn(ctx, app.NewContactService(store.Contacts)))
}

func printJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
