package config

import "strconv"

// ConfigSource identifies where a configuration value came from.
type ConfigSource string

const (
	// SourceDefault indicates the value came from built-in defaults.
	SourceDefault ConfigSource = "default"
	// SourceFile indicates the value came from the focus.toml config file.
	SourceFile ConfigSource = "file"
	// SourceEnv indicates the value came from an environment variable.
	SourceEnv ConfigSource = "env"
	// SourceCLI indicates the value came from a CLI flag.
	SourceCLI ConfigSource = "cli"
)

// ResolvedConfig holds the fully-resolved configuration with source tracking.
// The Config field contains the merged values; Sources tracks where each came from.
type ResolvedConfig struct {
	Config  *Config
	Sources map[string]ConfigSource // key is dotted path, e.g., "ui.title"
	Path    string                  // path to the config file used (empty if none)
}

// CLIOverrides captures flag values that can override configuration.
// A nil field means "not set" (do not override).
type CLIOverrides struct {
	DefaultFilter *string
	IDGenerator   *string
	ConfirmClear  *bool
	LogLevel      *string
	LogFile       *string
}

// EnvFunc is a function that looks up environment variables.
// Default implementation is os.LookupEnv. Injected for testability.
type EnvFunc func(key string) (string, bool)

// Resolve merges configuration from all sources in priority order:
// CLI flags > environment variables > config file > defaults.
//
// Parameters:
//   - defaults: built-in default config (from NewDefaults())
//   - fileConfig: parsed config from focus.toml (nil if no file found)
//   - envFn: function to look up environment variables
//   - overrides: CLI flag values (nil fields mean "not set")
//
// Returns the fully-resolved config with source annotations.
func Resolve(defaults *Config, fileConfig *Config, envFn EnvFunc, overrides *CLIOverrides) *ResolvedConfig {
	rc := &ResolvedConfig{
		Config:  &Config{},
		Sources: make(map[string]ConfigSource),
	}

	if defaults == nil {
		defaults = &Config{}
	}
	if envFn == nil {
		envFn = func(string) (string, bool) { return "", false }
	}
	if overrides == nil {
		overrides = &CLIOverrides{}
	}

	// Layer 1: defaults.
	resolveFromDefaults(rc, defaults)

	// Layer 2: file values override when set.
	if fileConfig != nil {
		resolveFromFile(rc, fileConfig)
	}

	// Layer 3: environment.
	resolveFromEnv(rc, envFn)

	// Layer 4: CLI flags.
	resolveFromCLI(rc, overrides)

	return rc
}

// --- Layer 1: Defaults ---

func resolveFromDefaults(rc *ResolvedConfig, d *Config) {
	c := rc.Config
	src := rc.Sources

	setString(&c.UI.Title, d.UI.Title, "ui.title", SourceDefault, src)
	setString(&c.UI.Subtitle, d.UI.Subtitle, "ui.subtitle", SourceDefault, src)
	setString(&c.UI.Placeholder, d.UI.Placeholder, "ui.placeholder", SourceDefault, src)
	setString(&c.UI.DefaultFilter, d.UI.DefaultFilter, "ui.default_filter", SourceDefault, src)
	setBool(&c.UI.ConfirmClear, d.UI.ConfirmClear, "ui.confirm_clear", SourceDefault, src)
	setBool(&c.UI.ShowProgress, d.UI.ShowProgress, "ui.show_progress", SourceDefault, src)

	setString(&c.Store.IDGenerator, d.Store.IDGenerator, "store.id_generator", SourceDefault, src)
	setString(&c.Store.IDPrefix, d.Store.IDPrefix, "store.id_prefix", SourceDefault, src)

	setString(&c.Log.Level, d.Log.Level, "log.level", SourceDefault, src)
	setString(&c.Log.File, d.Log.File, "log.file", SourceDefault, src)
}

// --- Layer 2: File ---

func resolveFromFile(rc *ResolvedConfig, f *Config) {
	c := rc.Config
	src := rc.Sources

	mergeString(&c.UI.Title, f.UI.Title, "ui.title", SourceFile, src)
	mergeString(&c.UI.Subtitle, f.UI.Subtitle, "ui.subtitle", SourceFile, src)
	mergeString(&c.UI.Placeholder, f.UI.Placeholder, "ui.placeholder", SourceFile, src)
	mergeString(&c.UI.DefaultFilter, f.UI.DefaultFilter, "ui.default_filter", SourceFile, src)
	mergeBool(&c.UI.ConfirmClear, f.UI.ConfirmClear, "ui.confirm_clear", SourceFile, src)
	mergeBool(&c.UI.ShowProgress, f.UI.ShowProgress, "ui.show_progress", SourceFile, src)

	mergeString(&c.Store.IDGenerator, f.Store.IDGenerator, "store.id_generator", SourceFile, src)
	mergeString(&c.Store.IDPrefix, f.Store.IDPrefix, "store.id_prefix", SourceFile, src)

	mergeString(&c.Log.Level, f.Log.Level, "log.level", SourceFile, src)
	mergeString(&c.Log.File, f.Log.File, "log.file", SourceFile, src)
}

// --- Layer 3: Environment ---

// Environment variable mapping:
//
//	FOCUS_TITLE           -> ui.title
//	FOCUS_DEFAULT_FILTER  -> ui.default_filter
//	FOCUS_CONFIRM_CLEAR   -> ui.confirm_clear (strconv.ParseBool syntax)
//	FOCUS_ID_GENERATOR    -> store.id_generator
//	FOCUS_LOG_LEVEL       -> log.level
//	FOCUS_LOG_FILE        -> log.file
//
// Boolean variables that do not parse are ignored.
func resolveFromEnv(rc *ResolvedConfig, envFn EnvFunc) {
	c := rc.Config

	if val, ok := envFn("FOCUS_TITLE"); ok {
		c.UI.Title = val
		rc.Sources["ui.title"] = SourceEnv
	}
	if val, ok := envFn("FOCUS_DEFAULT_FILTER"); ok {
		c.UI.DefaultFilter = val
		rc.Sources["ui.default_filter"] = SourceEnv
	}
	if val, ok := envFn("FOCUS_CONFIRM_CLEAR"); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			c.UI.ConfirmClear = boolPtr(b)
			rc.Sources["ui.confirm_clear"] = SourceEnv
		}
	}
	if val, ok := envFn("FOCUS_ID_GENERATOR"); ok {
		c.Store.IDGenerator = val
		rc.Sources["store.id_generator"] = SourceEnv
	}
	if val, ok := envFn("FOCUS_LOG_LEVEL"); ok {
		c.Log.Level = val
		rc.Sources["log.level"] = SourceEnv
	}
	if val, ok := envFn("FOCUS_LOG_FILE"); ok {
		c.Log.File = val
		rc.Sources["log.file"] = SourceEnv
	}
}

// --- Layer 4: CLI overrides ---

func resolveFromCLI(rc *ResolvedConfig, o *CLIOverrides) {
	c := rc.Config

	if o.DefaultFilter != nil {
		c.UI.DefaultFilter = *o.DefaultFilter
		rc.Sources["ui.default_filter"] = SourceCLI
	}
	if o.ConfirmClear != nil {
		c.UI.ConfirmClear = boolPtr(*o.ConfirmClear)
		rc.Sources["ui.confirm_clear"] = SourceCLI
	}
	if o.IDGenerator != nil {
		c.Store.IDGenerator = *o.IDGenerator
		rc.Sources["store.id_generator"] = SourceCLI
	}
	if o.LogLevel != nil {
		c.Log.Level = *o.LogLevel
		rc.Sources["log.level"] = SourceCLI
	}
	if o.LogFile != nil {
		c.Log.File = *o.LogFile
		rc.Sources["log.file"] = SourceCLI
	}
}

// --- Helpers ---

// setString unconditionally sets the target to the given value and records the source.
func setString(target *string, value string, path string, source ConfigSource, sources map[string]ConfigSource) {
	*target = value
	sources[path] = source
}

// mergeString overwrites the target only if value is non-empty (non-zero string).
// For file-layer merging, an empty string in the file means "not set in file",
// so it does not override the default.
func mergeString(target *string, value string, path string, source ConfigSource, sources map[string]ConfigSource) {
	if value != "" {
		*target = value
		sources[path] = source
	}
}

// setBool copies value (which may be nil) into target and records the source.
func setBool(target **bool, value *bool, path string, source ConfigSource, sources map[string]ConfigSource) {
	if value != nil {
		*target = boolPtr(*value)
	} else {
		*target = nil
	}
	sources[path] = source
}

// mergeBool overwrites the target only when value is set.
func mergeBool(target **bool, value *bool, path string, source ConfigSource, sources map[string]ConfigSource) {
	if value != nil {
		*target = boolPtr(*value)
		sources[path] = source
	}
}
