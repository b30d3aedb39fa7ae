// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// walletAddressRegex matches a 0x-prefixed, 40-hex-digit settlement address.
var walletAddressRegex = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// isoDateLayouts mirrors the layouts the yield calculator accepts.
var isoDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("wallet_address", validateWalletAddress)
		_ = v.RegisterValidation("iso8601", validateISO8601)
	}
}

func validateWalletAddress(fl validator.FieldLevel) bool {
	return walletAddressRegex.MatchString(fl.Field().String())
}

func validateISO8601(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	for _, layout := range isoDateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// IsWalletAddress reports whether s is a well-formed settlement address.
// Exposed for callers outside the binding engine.
func IsWalletAddress(s string) bool {
	return walletAddressRegex.MatchString(s)
}
