package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/cloudgateways/wopigate/internal/logger"
)

// validate is the singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate validates the configuration using struct tags and custom rules.
//
// This function uses go-playground/validator for declarative validation
// via struct tags, with additional custom validation for complex rules
// that cannot be expressed in tags.
//
// Validation is value-only: referenced files (secrets, TLS material) are
// checked separately by CheckFiles, so a configuration can be validated on
// a machine that does not hold the secrets.
//
// Returns an error describing the first validation failure.
func Validate(cfg *Config) error {
	// Run struct tag validation
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}

	// Custom validation rules that can't be expressed in tags
	return validateCustomRules(cfg)
}

// validateCustomRules performs custom validation beyond struct tags.
func validateCustomRules(cfg *Config) error {
	// The loglevel enumeration is case-insensitive, which oneof cannot
	// express
	if _, ok := logger.ParseLevel(cfg.General.LogLevel); !ok {
		return fmt.Errorf("general.loglevel: unknown level %q (expected Debug, Info, Warning, Error or Critical)",
			cfg.General.LogLevel)
	}

	// TLS termination needs both halves of the key pair
	if cfg.Security.UseHTTPS {
		if cfg.Security.WOPICert == "" || cfg.Security.WOPIKey == "" {
			return fmt.Errorf("security: usehttps requires both wopicert and wopikey")
		}
	}

	// Only the section selected by storagetype is validated
	if err := validateBackend(cfg); err != nil {
		return err
	}

	return nil
}

// CheckFiles verifies that the files the configuration references exist and
// are usable: both shared-secret files, and the TLS key pair when usehttps
// is set.
//
// Separated from Validate so that the validate CLI command can run without
// access to production secrets unless asked to check them.
func CheckFiles(cfg *Config) error {
	for _, path := range []string{cfg.Security.WOPISecretFile, cfg.Security.IOPSecretFile} {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("secret file %s: %w", path, err)
		}
		if info.IsDir() {
			return fmt.Errorf("secret file %s: is a directory", path)
		}
		if info.Size() == 0 {
			return fmt.Errorf("secret file %s: is empty", path)
		}
	}

	return CheckTLSMaterial(cfg)
}

// formatValidationError converts validator errors into user-friendly
// messages.
func formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		// Return the first validation error with context
		if len(validationErrs) > 0 {
			e := validationErrs[0]
			return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)",
				e.Namespace(), e.Tag(), e.Value())
		}
	}
	return err
}
