package middleware

import (
	"errors"
	"reflect"
	"strings"

	"github.com/cobranza/backend/internal/domain/shared/valueobject"
	"github.com/cobranza/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// SetupValidator registers JSON field names and the decimal validation tags
// on gin's validator:
//
//	decimal_positive  value > 0
//	decimal_gte0      value >= 0
//	money             at most two decimal places
//	local_date        YYYY-MM-DD
func SetupValidator() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}
	return RegisterValidations(v)
}

// RegisterValidations installs the custom tags on v
func RegisterValidations(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	// validate decimals by value rather than as structs
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	if err := v.RegisterValidation("decimal_positive", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && d.IsPositive()
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("decimal_gte0", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && !d.IsNegative()
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		_, err := valueobject.ParseAmount(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}
	return v.RegisterValidation("local_date", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return len(s) == 10 && s[4] == '-' && s[7] == '-'
	})
}

// ValidationDetails converts binding errors into field details. It returns
// nil when err is not a validation error.
func ValidationDetails(err error) []dto.ValidationDetail {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make([]dto.ValidationDetail, 0, len(verrs))
	for _, e := range verrs {
		details = append(details, dto.ValidationDetail{
			Field:   e.Field(),
			Message: validationMessage(e),
		})
	}
	return details
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "uuid":
		return "Invalid UUID format"
	case "decimal_positive":
		return "Must be a number greater than zero"
	case "decimal_gte0":
		return "Must be a number greater than or equal to zero"
	case "money":
		return "Must be an amount with at most 2 decimal places"
	case "local_date":
		return "Must be a date in YYYY-MM-DD format"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "e164":
		return "Must be a phone number in E.164 format"
	default:
		return "Invalid value"
	}
}
