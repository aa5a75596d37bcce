package mutation

import (
	"testing"

	"github.com/catalog-dash-poc-v1/client/internal/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() catalog.ProductInput {
	return catalog.ProductInput{
		Title:       "Mechanical Keyboard",
		Description: "A keyboard with proper switches.",
		Price:       decimal.NewFromFloat(79.99),
		Category:    "electronics",
	}
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*catalog.ProductInput)
		field  string
	}{
		{"valid", func(*catalog.ProductInput) {}, ""},
		{"title too short", func(in *catalog.ProductInput) { in.Title = "ab" }, "title"},
		{"title missing", func(in *catalog.ProductInput) { in.Title = "" }, "title"},
		{"description too short", func(in *catalog.ProductInput) { in.Description = "too short" }, "description"},
		{"price zero", func(in *catalog.ProductInput) { in.Price = decimal.Zero }, "price"},
		{"price negative", func(in *catalog.ProductInput) { in.Price = decimal.NewFromInt(-3) }, "price"},
		{"category missing", func(in *catalog.ProductInput) { in.Category = "" }, "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			fields := ValidateInput(in)
			if tt.field == "" {
				assert.Nil(t, fields)
				return
			}
			require.NotNil(t, fields)
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidateInputReportsAllFailingFields(t *testing.T) {
	fields := ValidateInput(catalog.ProductInput{})

	require.NotNil(t, fields)
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "description")
	assert.Contains(t, fields, "price")
	assert.Contains(t, fields, "category")
}
