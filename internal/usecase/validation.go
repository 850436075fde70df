package usecase

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/xavierca1/mapeo-rewards/internal/entity"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// erros usam o nome JSON do campo, que é o nome do input no front
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("property_type", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, t := range entity.PropertyTypes {
			if t == value {
				return true
			}
		}
		return false
	}); err != nil {
		panic("usecase: registro da regra property_type: " + err.Error())
	}

	return v
}

// ValidateStruct roda as tags `validate` e traduz cada falha para FieldError.
func ValidateStruct(s any) []FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		param := fe.Param()

		var msg string
		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "email":
			msg = "must be a valid email"
		case "min":
			msg = "must be at least " + param + " characters"
		case "max":
			msg = "must be at most " + param + " characters"
		case "gt":
			msg = "must be greater than " + param
		case "property_type":
			msg = "must be one of: " + strings.Join(entity.PropertyTypes, ", ")
		default:
			msg = "is invalid"
		}
		fields = append(fields, FieldError{Field: field, Message: msg})
	}
	return fields
}

func checkInput(s any) error {
	if fields := ValidateStruct(s); len(fields) > 0 {
		return validationError("VALIDATION_ERROR", "Veuillez remplir correctement les champs obligatoires.", fields)
	}
	return nil
}
