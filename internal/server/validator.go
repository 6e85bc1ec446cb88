package server

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rickgao/spacexy-tracker/internal/config"
	"github.com/rickgao/spacexy-tracker/internal/model"
)

// Validator checks calculator inputs against field rules and game limits.
type Validator struct {
	validate *validator.Validate
	game     config.GameConfig
}

// NewValidator creates a Validator bound to the game's limits.
func NewValidator(game config.GameConfig) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v, game: game}
}

// ValidateInputs returns a field -> message map, or nil when in is valid.
func (v *Validator) ValidateInputs(in model.CalculatorInputs) map[string]string {
	errs := FormatValidationError(v.validate.Struct(in))
	if errs == nil {
		errs = make(map[string]string)
	}

	if _, ok := errs["bet"]; !ok {
		tag := fmt.Sprintf("gte=%g,lte=%g", v.game.MinBet, v.game.MaxBet)
		if v.validate.Var(in.BetAmount, tag) != nil {
			errs["bet"] = fmt.Sprintf("Must be between %g and %g", v.game.MinBet, v.game.MaxBet)
		}
	}
	if _, ok := errs["target"]; !ok {
		tag := fmt.Sprintf("lte=%g", v.game.MaxMultiplier)
		if v.validate.Var(in.TargetMultiplier, tag) != nil {
			errs["target"] = fmt.Sprintf("Must be at most %g", v.game.MaxMultiplier)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// FormatValidationError formats validation errors into a user-friendly map
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "gt":
			errs[field] = fmt.Sprintf("Must be greater than %s", e.Param())
		case "gte":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "lte":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}
