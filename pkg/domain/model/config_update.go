package model

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// ConfigUpdate holds the settings submitted from the dashboard. Nil means the
// field was not submitted. Updates are recorded but never applied.
type ConfigUpdate struct {
	Port     *string
	Prefix   *string
	LogLevel *string
}

// LogLevels are the accepted values of ConfigUpdate.LogLevel
var LogLevels = []any{"debug", "info", "warn", "error"}

// Validate checks the submitted fields. Absent fields are always valid.
func (c *ConfigUpdate) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, is.Port),
		validation.Field(&c.Prefix, validation.Length(1, 5), is.PrintableASCII),
		validation.Field(&c.LogLevel, validation.In(LogLevels...)),
	)
}

// Describe renders the update for the activity log
func (c *ConfigUpdate) Describe() string {
	return fmt.Sprintf("Configuration updated: port=%s, prefix=%s, logLevel=%s",
		valueOrUnset(c.Port), valueOrUnset(c.Prefix), valueOrUnset(c.LogLevel))
}

func valueOrUnset(v *string) string {
	if v == nil {
		return "unset"
	}
	return *v
}
