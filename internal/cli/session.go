package cli

import (
	"errors"
	"fmt"

	"github.com/AbdelazizMoustafa10m/focus/internal/config"
	"github.com/AbdelazizMoustafa10m/focus/internal/logging"
	"github.com/AbdelazizMoustafa10m/focus/internal/store"
)

// cliOverrides collects the global flags that were set explicitly on the
// command line.
func cliOverrides() *config.CLIOverrides {
	o := &config.CLIOverrides{}
	flags := rootCmd.PersistentFlags()
	if flags.Changed("filter") {
		filter := flagFilter
		o.DefaultFilter = &filter
	}
	if flags.Changed("id-gen") {
		gen := flagIDGen
		o.IDGenerator = &gen
	}
	return o
}

// loadSessionConfig resolves and validates the configuration for a command
// that drives a store. Validation errors are fatal; warnings are logged.
// The configured log level is applied before returning.
func loadSessionConfig() (*config.Config, error) {
	resolved, meta, err := loadAndResolveConfig()
	if err != nil {
		return nil, err
	}
	cfg := resolved.Config

	if err := logging.Setup(logOptions(cfg.Log.Level)); err != nil {
		// Validation reports the bad level below.
		logging.New("cli").Debug("ignoring log level", "error", err)
	}

	result := config.Validate(cfg, meta)
	logger := logging.New("config")
	for _, issue := range result.Warnings() {
		logger.Warn(issue.Message, "field", issue.Field)
	}
	if result.HasErrors() {
		errs := make([]error, 0, len(result.Errors()))
		for _, issue := range result.Errors() {
			errs = append(errs, fmt.Errorf("%s: %s", issue.Field, issue.Message))
		}
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return cfg, nil
}

// newStore builds an empty store from the resolved configuration.
func newStore(cfg *config.Config) (*store.Store, error) {
	gen, err := store.NewGenerator(cfg.Store.IDGenerator, cfg.Store.IDPrefix)
	if err != nil {
		return nil, fmt.Errorf("configuring store: %w", err)
	}

	opts := []store.Option{
		store.WithIDGenerator(gen),
		store.WithLogger(logging.New("store")),
	}
	if cfg.UI.DefaultFilter != "" {
		filter, err := store.ParseFilter(cfg.UI.DefaultFilter)
		if err != nil {
			return nil, fmt.Errorf("configuring store: %w", err)
		}
		opts = append(opts, store.WithFilter(filter))
	}
	return store.New(opts...), nil
}
