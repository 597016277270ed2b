package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/segyhp/placement-engine/internal/domain"
	"github.com/segyhp/placement-engine/internal/workflow"
	customError "github.com/segyhp/placement-engine/pkg/errors"
	"github.com/segyhp/placement-engine/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// newValidator returns a validator that understands decimal amounts and review decisions.
// It panics if a custom tag cannot be registered.
func newValidator() *validator.Validate {
	v := validator.New()

	// decimals are validated through their string form
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	if err := registerValidations(v, customValidations); err != nil {
		panic(err)
	}

	return v
}

var customValidations = map[string]validator.Func{
	"decimal_gt0": func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && d.IsPositive()
	},
	"decimal_gte0": func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && !d.IsNegative()
	},
	"review_decision": func(fl validator.FieldLevel) bool {
		return workflow.IsReviewDecision(domain.DocumentStatus(fl.Field().String()))
	},
}

func registerValidations(v *validator.Validate, validations map[string]validator.Func) error {
	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register validation %q: %w", tag, err)
		}
	}
	return nil
}

// writeError maps service errors onto HTTP responses
func writeError(w http.ResponseWriter, err error) {
	message := err.Error()
	var be *customError.BusinessError
	if errors.As(err, &be) {
		message = be.Message
	}

	switch {
	case errors.Is(err, customError.ErrInvalidTerms),
		errors.Is(err, customError.ErrMissingRejectionReason):
		response.BadRequest(w, message, err)
	case errors.Is(err, customError.ErrDocumentNotFound),
		errors.Is(err, customError.ErrContractNotFound):
		response.NotFound(w, message)
	case errors.Is(err, customError.ErrInvalidTransition):
		response.Conflict(w, "this document was already processed", err)
	default:
		response.InternalServerError(w, "Internal server error", nil)
	}
}
