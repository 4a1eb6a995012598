package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"tabloide-mp/models"
	"tabloide-mp/utils"
)

var (
	once     sync.Once
	validate *validator.Validate

	rgbHex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// V returns the shared validator with the project tags registered
func V() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		validate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

		validate.RegisterValidation("cnpj", stringValidator(utils.ValidCNPJ))
		validate.RegisterValidation("cpf", stringValidator(utils.ValidCPF))
		validate.RegisterValidation("phone_br", stringValidator(utils.ValidPhone))
		validate.RegisterValidation("cep", stringValidator(utils.ValidCEP))
		validate.RegisterValidation("rgbhex", stringValidator(rgbHex.MatchString))
	})
	return validate
}

func stringValidator(fn func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return fn(fl.Field().String())
	}
}

func decimalValue(v reflect.Value) any {
	if d, ok := v.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

var messages = map[string]string{
	"required": "is required",
	"max":      "is too long",
	"min":      "is too small",
	"len":      "has an invalid length",
	"gte":      "must not be negative",
	"gt":       "must be positive",
	"email":    "is not a valid email",
	"rgbhex":   "must be a #RRGGBB color",
	"cnpj":     "is not a valid CNPJ",
	"cpf":      "is not a valid CPF",
	"phone_br": "is not a valid phone number",
	"cep":      "is not a valid CEP",
}

// Struct validates s and reports the first failing field as a *models.ValidationError
func Struct(s any) error {
	err := V().Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return models.NewValidationError("", err, "invalid request")
	}

	fe := ve[0]
	msg, ok := messages[fe.Tag()]
	if !ok {
		msg = "is invalid"
	}
	if fe.Tag() == "max" && fe.Kind() != reflect.String {
		msg = "is too large"
	}
	return models.NewValidationError(fe.Field(), fe, "%s", msg)
}
