package db

import (
	"github.com/go-playground/validator/v10"

	"github.com/iasonasma/LibreLingo/pkg/images"
)

// Validator checks authored records before they are written. Image
// references are checked against the catalog it was built with.
type Validator struct {
	v *validator.Validate
}

// NewValidator returns a Validator bound to catalog.
func NewValidator(catalog *images.Catalog) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// RegisterValidation only fails for empty tags or reserved names.
	_ = v.RegisterValidation("image", func(fl validator.FieldLevel) bool {
		return catalog.Contains(fl.Field().String())
	})
	return &Validator{v: v}
}

// Check validates a model struct.
func (v *Validator) Check(record any) error {
	return v.v.Struct(record)
}
