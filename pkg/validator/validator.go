package validator

import (
	"context"
	"regexp"
	"time"

	"github.com/go-playground/validator"
)

var (
	global    *validator.Validate
	hhmmRegex = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)
)

const (
	ErrInvalidFormat      = "Invalid format"
	ErrFieldRequired      = "Field is required"
	ErrInvalidEmail       = "Invalid e-mail address"
	ErrFieldExceedsMaxLen = "Field exceeds maximum length"
	ErrFieldBelowMinLen   = "Field is below minimum length"
	ErrFieldExceedsMaxVal = "Field exceeds maximum value"
	ErrFieldBelowMinVal   = "Field is below minimum value"
	ErrUnknownValidation  = "Unknown validation error"
)

// FieldError is one failed rule, reported per field so the caller can fix
// the whole form in a single round trip.
type FieldError struct {
	Field   string
	Rule    string
	Message string
}

func init() {
	SetValidator(New())
}

func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("hhmm", validateHHMM)
	_ = v.RegisterValidation("isodate", validateISODate)
	return v
}

func SetValidator(v *validator.Validate) {
	global = v
}

func Validator() *validator.Validate {
	return global
}

func validateHHMM(fl validator.FieldLevel) bool {
	return hhmmRegex.MatchString(fl.Field().String())
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

// Validate checks the structure and returns every failed field, nil when
// the structure is valid.
func Validate(ctx context.Context, structure any) []FieldError {
	return parseValidationErrors(Validator().StructCtx(ctx, structure))
}

func parseValidationErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	vErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(vErrors) == 0 {
		return nil
	}

	out := make([]FieldError, 0, len(vErrors))
	for _, ve := range vErrors {
		var msg string
		switch ve.Tag() {
		case "required":
			msg = ErrFieldRequired
		case "email":
			msg = ErrInvalidEmail
		case "max":
			msg = ErrFieldExceedsMaxLen
		case "min":
			msg = ErrFieldBelowMinLen
		case "lt", "lte":
			msg = ErrFieldExceedsMaxVal
		case "gt", "gte":
			msg = ErrFieldBelowMinVal
		case "hhmm":
			msg = "Time must be in HH:MM format"
		case "isodate":
			msg = "Date must be in YYYY-MM-DD format"
		case "oneof":
			msg = ErrInvalidFormat
		default:
			msg = ErrUnknownValidation
		}
		out = append(out, FieldError{Field: ve.Field(), Rule: ve.Tag(), Message: msg})
	}
	return out
}
