package validator

import (
	"fmt"
	"time"

	"github.com/ekaraca/cinebook/internal/domain"
	"github.com/go-playground/validator/v10"
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("showtime", validateShowtime)
	validator.RegisterValidation("seat_row", validateSeatRow)

	return validator
}

func validateShowtime(fl validator.FieldLevel) bool {
	_, err := time.Parse(domain.ShowtimeLayout, fl.Field().String())

	return err == nil
}

func validateSeatRow(fl validator.FieldLevel) bool {
	row := fl.Field().String()
	if len(row) == 0 || len(row) > 2 {
		return false
	}

	for _, ch := range row {
		if ch < 'A' || ch > 'Z' {
			return false
		}
	}

	return true
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())
	case "showtime":
		return "must be a clock time like 7:00 PM"
	case "seat_row":
		return "must be an uppercase row label like A"
	default:
		return "is invalid"
	}
}
