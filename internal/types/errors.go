package types

import "fmt"

func newValidationError(field, value string) error {
	return fmt.Errorf("invalid %s: %s", field, value)
}
