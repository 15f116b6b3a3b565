// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.
//
// Context
// -------
// `loader.go` calls `validateStruct` right after unmarshal.  Any tag
// mismatch aborts startup so the binary never serves with a half-filled
// upstream section.  Besides the built-in tags we register `nosecretref`,
// which rejects a `vault:` string that survived resolution (Vault
// disabled but a reference left in YAML).
package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	_ = val.RegisterValidation("nosecretref", func(fl validator.FieldLevel) bool {
		return !strings.HasPrefix(fl.Field().String(), vaultRef)
	})
	return val
}

// validateStruct returns the first validation error, or nil on success.
func validateStruct(c *Config) error {
	return v.Struct(c)
}
