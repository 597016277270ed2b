package handler

import (
	"testing"

	"github.com/segyhp/placement-engine/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidator(t *testing.T) {
	var v *validator.Validate
	require.NotPanics(t, func() { v = newValidator() })

	type amount struct {
		Value decimal.Decimal `validate:"decimal_gt0"`
	}
	assert.NoError(t, v.Struct(amount{Value: decimal.RequireFromString("0.01")}))
	assert.Error(t, v.Struct(amount{Value: decimal.Zero}))

	assert.NoError(t, v.Struct(domain.ReviewRequest{Decision: domain.DocumentStatusUnderReview}))
	assert.Error(t, v.Struct(domain.ReviewRequest{Decision: domain.DocumentStatusPaid}))
}

func TestRegisterValidations_ReportsFailure(t *testing.T) {
	always := func(validator.FieldLevel) bool { return true }

	err := registerValidations(validator.New(), map[string]validator.Func{"": always})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "register validation")

	assert.NoError(t, registerValidations(validator.New(), map[string]validator.Func{"always": always}))
}
