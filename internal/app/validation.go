package app

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	hrerrors "github.com/example/hrdesk/internal/errors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// validateRequest checks struct tags on a request and reports the first
// failing field as a ValidationError.
func validateRequest(req any) error {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if hrerrors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return hrerrors.NewValidationError(fe.Field(), fe.Value(), describeTag(fe))
	}
	return fmt.Errorf("failed to validate request: %w", err)
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
