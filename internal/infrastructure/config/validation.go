package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator checks struct tags and reports failures by their config key
// (logging.level) or yaml key (tasks[2].duration_ms) rather than Go field names
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that names fields after their mapstructure
// or yaml tag
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"mapstructure", "yaml"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	return &Validator{validate: v}
}

// Validate checks i against its validate tags
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		key := fe.Namespace()
		if i := strings.Index(key, "."); i >= 0 {
			key = key[i+1:]
		}
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		messages = append(messages, fmt.Sprintf("%s: must satisfy %s (got %v)", key, rule, fe.Value()))
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
}

// ValidateConfig runs tag validation, then the rules that span fields
func ValidateConfig(cfg *Config) error {
	if err := NewValidator().Validate(cfg); err != nil {
		return err
	}

	switch {
	case cfg.Logging.Output == "file" && cfg.Logging.FilePath == "":
		return errors.New("logging.file_path is required when logging.output is file")
	case cfg.Database.Type == "sqlite" && cfg.Database.Path == "":
		return errors.New("database.path is required for sqlite")
	case cfg.Simulation.Balance.Combat.MinIntervalMs > cfg.Simulation.Balance.Combat.MeleeIntervalMs:
		return errors.New("simulation.balance.combat.min_interval_ms exceeds the melee interval")
	case cfg.Logging.Sampling.Thereafter > 0 && cfg.Logging.Sampling.Initial == 0:
		return errors.New("logging.sampling.thereafter needs logging.sampling.initial")
	}
	return nil
}
