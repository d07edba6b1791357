package config

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Levels accepted by log.level.
var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks every setting and joins all failures.
func (c *Config) Validate() error {
	var errs []error

	if !validLevels[c.Log.Level] {
		errs = append(errs, &ValidationError{
			Key:    "log.level",
			Reason: "must be one of debug, info, warn, error",
			Value:  c.Log.Level,
		})
	}

	if c.Render.Width < 1 {
		errs = append(errs, &ValidationError{
			Key:    "render.width",
			Reason: "must be positive",
			Value:  c.Render.Width,
		})
	}

	colors := []struct {
		path  string
		value string
	}{
		{"render.headline_color", c.Render.HeadlineColor},
		{"render.quote_color", c.Render.QuoteColor},
		{"render.code_background", c.Render.CodeBackground},
		{"render.divider_color", c.Render.DividerColor},
	}
	for _, col := range colors {
		if _, err := colorful.Hex(col.value); err != nil {
			errs = append(errs, &ValidationError{
				Key:    col.path,
				Reason: fmt.Sprintf("invalid hex color: %v", err),
				Value:  col.value,
			})
		}
	}

	return errors.Join(errs...)
}
