package functions

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// decodeArgs copies the model-supplied arguments into in and validates it.
// Numbers arrive as float64, so integer fields reject fractional values.
func decodeArgs(name string, args map[string]any, in any) error {
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("%s: encode arguments: %w", name, err)
	}

	if err := json.Unmarshal(data, in); err != nil {
		return fmt.Errorf("%s: invalid arguments: %w", name, err)
	}

	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%s: invalid arguments: %w", name, err)
	}

	return nil
}
