package mutation

import (
	"errors"
	"reflect"

	"github.com/catalog-dash-poc-v1/client/internal/catalog"
	errx "github.com/catalog-dash-poc-v1/client/internal/core/error"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Let numeric tags (gt=0) see decimal fields as plain numbers.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	return v
}

// ValidateInput checks the authoring form contracts and returns per-field
// messages, or nil when the input is acceptable. A non-nil result blocks the
// request entirely; nothing is sent to the catalog service.
func ValidateInput(in catalog.ProductInput) errx.FieldErrors {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	fields := errx.FieldErrors{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["form"] = err.Error()
		return fields
	}

	for _, fe := range verrs {
		switch fe.StructField() {
		case "Title":
			fields["title"] = "title must be at least 3 characters"
		case "Description":
			fields["description"] = "description must be at least 10 characters"
		case "Price":
			fields["price"] = "price must be greater than 0"
		case "Category":
			fields["category"] = "category is required"
		}
	}
	return fields
}
