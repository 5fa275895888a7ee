package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "long-whisper/internal/app/errors"
)

var validate = validator.New()

// Validate checks struct tags first, then the rules tags cannot express.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		validationErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return apperrors.Mark(err, apperrors.ErrInvalidConfig)
		}

		messages := make([]string, 0, len(validationErrs))
		for _, fieldError := range validationErrs {
			field := strings.ToLower(fieldError.Field())

			switch fieldError.Tag() {
			case "required":
				messages = append(messages, field+" is required")
			case "min":
				messages = append(messages, fmt.Sprintf("%s must be at least %s", field, fieldError.Param()))
			case "max":
				messages = append(messages, fmt.Sprintf("%s must be at most %s", field, fieldError.Param()))
			case "url":
				messages = append(messages, field+" must be a valid URL")
			default:
				messages = append(messages, field+" is invalid")
			}
		}
		return apperrors.Mark(fmt.Errorf("%s", strings.Join(messages, "; ")), apperrors.ErrInvalidConfig)
	}

	if cfg.RequestTimeout != 0 {
		if err := ValidateTimeout(cfg.RequestTimeout, "request"); err != nil {
			return apperrors.Mark(err, apperrors.ErrInvalidConfig)
		}
	}
	return ValidateConcurrency(cfg.Workers, "transcription")
}

// ValidateTimeout validates timeout duration
func ValidateTimeout(timeout time.Duration, name string) error {
	if timeout <= 0 {
		return fmt.Errorf("%s timeout must be positive", name)
	}
	if timeout > 30*time.Minute {
		return fmt.Errorf("%s timeout too large (max 30 minutes)", name)
	}
	return nil
}

// ValidateConcurrency validates concurrency setting
func ValidateConcurrency(concurrency int, name string) error {
	if concurrency <= 0 || concurrency > 32 {
		return apperrors.OutOfRange(name+" workers", 1, 32)
	}
	return nil
}
