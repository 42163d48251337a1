package validate

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// A single Validate instance caches struct metadata, so share one.
var v = validator.New(validator.WithRequiredStructEnabled())

// Struct checks s against its `validate` tags.
func Struct(s any) error {
	if err := v.Struct(s); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
