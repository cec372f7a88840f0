// Package config loads focus.toml and layers it with defaults, environment
// variables and command-line flags.
package config

// Config is the top-level configuration structure mapping to focus.toml.
type Config struct {
	UI    UIConfig    `toml:"ui"`
	Store StoreConfig `toml:"store"`
	Log   LogConfig   `toml:"log"`
}

// UIConfig maps to the [ui] section in focus.toml.
//
// Boolean fields are pointers so that an explicit false in the file can be
// told apart from an absent key when layering over the defaults.
type UIConfig struct {
	Title         string `toml:"title"`
	Subtitle      string `toml:"subtitle"`
	Placeholder   string `toml:"placeholder"`
	DefaultFilter string `toml:"default_filter"`
	ConfirmClear  *bool  `toml:"confirm_clear"`
	ShowProgress  *bool  `toml:"show_progress"`
}

// StoreConfig maps to the [store] section in focus.toml.
type StoreConfig struct {
	IDGenerator string `toml:"id_generator"`
	IDPrefix    string `toml:"id_prefix"`
}

// LogConfig maps to the [log] section in focus.toml.
type LogConfig struct {
	Level string `toml:"level"`
	// File receives log output while the full-screen UI owns the terminal.
	// Empty means logs are discarded during the UI session.
	File string `toml:"file"`
}

// ConfirmClearEnabled reports whether clearing completed tasks asks first.
func (u UIConfig) ConfirmClearEnabled() bool {
	return u.ConfirmClear != nil && *u.ConfirmClear
}

// ShowProgressEnabled reports whether the progress bar is rendered. It
// defaults to true when unset.
func (u UIConfig) ShowProgressEnabled() bool {
	return u.ShowProgress == nil || *u.ShowProgress
}
