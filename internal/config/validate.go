package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/BurntSushi/toml"

	"github.com/AbdelazizMoustafa10m/focus/internal/store"
)

// ValidationSeverity indicates whether a validation issue is an error or warning.
type ValidationSeverity string

const (
	// SeverityError indicates a fatal validation issue; the configuration is unusable.
	SeverityError ValidationSeverity = "error"
	// SeverityWarning indicates an informational validation issue; the configuration works
	// but may have problems.
	SeverityWarning ValidationSeverity = "warning"
)

// ValidationIssue represents a single validation finding.
type ValidationIssue struct {
	Severity ValidationSeverity
	Field    string // dotted path, e.g., "project.name"
	Message  string
}

// ValidationResult holds all validation findings.
type ValidationResult struct {
	Issues []ValidationIssue
}

// HasErrors returns true if any issue has error severity.
func (vr *ValidationResult) HasErrors() bool {
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// HasWarnings returns true if any issue has warning severity.
func (vr *ValidationResult) HasWarnings() bool {
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityWarning {
			return true
		}
	}
	return false
}

// Errors returns only error-severity issues.
func (vr *ValidationResult) Errors() []ValidationIssue {
	var errs []ValidationIssue
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityError {
			errs = append(errs, issue)
		}
	}
	return errs
}

// Warnings returns only warning-severity issues.
func (vr *ValidationResult) Warnings() []ValidationIssue {
	var warns []ValidationIssue
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityWarning {
			warns = append(warns, issue)
		}
	}
	return warns
}

// validLogLevels is the set of valid values for log.level.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// maxTitleLength is the longest title that still fits the title bar of an
// 80-column terminal next to the version string.
const maxTitleLength = 48

// Validate checks the configuration for correctness and completeness.
// It performs semantic validation of every section and unknown key detection.
//
// Parameters:
//   - cfg: the configuration to validate
//   - meta: TOML metadata from BurntSushi/toml (may be nil if no file was loaded)
//
// Returns validation results. Check HasErrors() to determine if the config is usable.
func Validate(cfg *Config, meta *toml.MetaData) *ValidationResult {
	vr := &ValidationResult{}

	if cfg == nil {
		addError(vr, "", "configuration is nil")
		return vr
	}

	validateUI(vr, &cfg.UI)
	validateStore(vr, &cfg.Store)
	validateLog(vr, &cfg.Log)
	validateUnknownKeys(vr, meta)

	return vr
}

// validateUI checks the [ui] section for errors and warnings.
func validateUI(vr *ValidationResult, u *UIConfig) {
	if u.DefaultFilter != "" {
		if _, err := store.ParseFilter(u.DefaultFilter); err != nil {
			addError(vr, "ui.default_filter",
				fmt.Sprintf("unrecognized filter %q; must be one of: all, active, done", u.DefaultFilter))
		}
	}

	if strings.TrimSpace(u.Title) == "" {
		addWarning(vr, "ui.title", "is empty; the title bar will only show the version")
	} else if utf8.RuneCountInString(u.Title) > maxTitleLength {
		addWarning(vr, "ui.title",
			fmt.Sprintf("is %d characters long and will be truncated (max %d)", utf8.RuneCountInString(u.Title), maxTitleLength))
	}
}

// validateStore checks the [store] section.
func validateStore(vr *ValidationResult, s *StoreConfig) {
	if s.IDGenerator != "" && !slices.Contains(store.GeneratorKinds(), s.IDGenerator) {
		addError(vr, "store.id_generator",
			fmt.Sprintf("unrecognized generator %q; must be one of: %s", s.IDGenerator, strings.Join(store.GeneratorKinds(), ", ")))
	}

	if strings.ContainsFunc(s.IDPrefix, unicode.IsSpace) {
		addError(vr, "store.id_prefix", "must not contain whitespace")
	}

	if s.IDPrefix != "" && s.IDGenerator != "" && s.IDGenerator != store.GeneratorCounter {
		addWarning(vr, "store.id_prefix",
			fmt.Sprintf("is ignored by the %q generator", s.IDGenerator))
	}
}

// validateLog checks the [log] section.
func validateLog(vr *ValidationResult, l *LogConfig) {
	if l.Level != "" && !validLogLevels[strings.ToLower(l.Level)] {
		addError(vr, "log.level",
			fmt.Sprintf("unrecognized level %q; must be one of: debug, info, warn, error", l.Level))
	}

	// Warning: the directory for log.file does not exist.
	if l.File != "" {
		dir := filepath.Dir(l.File)
		if _, err := os.Stat(dir); err != nil {
			addWarning(vr, "log.file",
				fmt.Sprintf("directory %q does not exist", dir))
		}
	}
}

// validateUnknownKeys checks for TOML keys that did not map to any config struct field.
func validateUnknownKeys(vr *ValidationResult, meta *toml.MetaData) {
	if meta == nil {
		return
	}

	for _, key := range meta.Undecoded() {
		path := strings.Join(key, ".")
		addWarning(vr, path, "unknown configuration key")
	}
}

// addError appends an error-severity issue to the validation result.
func addError(vr *ValidationResult, field, message string) {
	vr.Issues = append(vr.Issues, ValidationIssue{
		Severity: SeverityError,
		Field:    field,
		Message:  message,
	})
}

// addWarning appends a warning-severity issue to the validation result.
func addWarning(vr *ValidationResult, field, message string) {
	vr.Issues = append(vr.Issues, ValidationIssue{
		Severity: SeverityWarning,
		Field:    field,
		Message:  message,
	})
}
