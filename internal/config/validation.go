package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateSource()...)
	errors = append(errors, c.validateExtraction()...)
	errors = append(errors, c.validateOutput()...)
	errors = append(errors, c.validateTuning()...)
	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateSource() ValidationErrors {
	var errors ValidationErrors

	switch c.Source.Driver {
	case "sqlite", "mysql":
	default:
		errors = append(errors, ValidationError{
			Field:   "source.driver",
			Message: fmt.Sprintf("unsupported driver %q (must be sqlite or mysql)", c.Source.Driver),
		})
	}

	if c.Source.Driver == "mysql" && c.Source.DSN == "" {
		errors = append(errors, ValidationError{
			Field:   "source.dsn",
			Message: "dsn is required for the mysql driver",
		})
	}

	return errors
}

func (c *Config) validateExtraction() ValidationErrors {
	var errors ValidationErrors

	if len(c.Extraction.Entities) == 0 {
		errors = append(errors, ValidationError{
			Field:   "extraction.entities",
			Message: "at least one entity class must be selected",
		})
	}
	for _, e := range c.Extraction.Entities {
		switch e {
		case EntityIdentifier, EntityTemporal, EntityRelational:
		default:
			errors = append(errors, ValidationError{
				Field:   "extraction.entities",
				Message: fmt.Sprintf("unknown entity class %q", e),
			})
		}
	}

	if c.Extraction.Limit < 0 {
		errors = append(errors, ValidationError{
			Field:   "extraction.limit",
			Message: "limit must be zero or positive",
		})
	}

	return errors
}

func (c *Config) validateOutput() ValidationErrors {
	var errors ValidationErrors

	switch c.Output.Format {
	case "json", "csv":
	default:
		errors = append(errors, ValidationError{
			Field:   "output.format",
			Message: fmt.Sprintf("unsupported format %q (must be json or csv)", c.Output.Format),
		})
	}

	return errors
}

func (c *Config) validateTuning() ValidationErrors {
	var errors ValidationErrors

	if c.Tuning.MaxRelationPairs < 1 {
		errors = append(errors, ValidationError{
			Field:   "tuning.max_relation_pairs",
			Message: "max_relation_pairs must be at least 1",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid level %q (must be debug, info, warn, or error)", c.Logging.Level),
		})
	}

	switch c.Logging.Format {
	case "", "json", "text":
	default:
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("invalid format %q (must be json or text)", c.Logging.Format),
		})
	}

	return errors
}
