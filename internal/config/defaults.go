package config

import "github.com/AbdelazizMoustafa10m/focus/internal/store"

// NewDefaults returns a Config populated with all default values.
func NewDefaults() *Config {
	return &Config{
		UI: UIConfig{
			Title:         "Focus Tasks",
			Subtitle:      "Organize the rest of your day in a few minutes.",
			Placeholder:   "Add a new task...",
			DefaultFilter: string(store.FilterAll),
			ConfirmClear:  boolPtr(false),
			ShowProgress:  boolPtr(true),
		},
		Store: StoreConfig{
			IDGenerator: store.GeneratorCounter,
			IDPrefix:    "t",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func boolPtr(b bool) *bool {
	return &b
}
