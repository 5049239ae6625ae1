package validation

import (
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/port"
)

type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func New() port.Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	english := en.New()
	uni := ut.New(english, english)

	translator, found := uni.GetTranslator("en")

	if !found {
		panic("translator en not found")
	}

	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(err)
	}

	return &Validator{
		validate:   validate,
		translator: translator,
	}
}

// ValidateStruct checks the struct's validate tags and returns a
// *domain.Error with per-field messages on failure.
func (v *Validator) ValidateStruct(s interface{}) error {
	err := v.validate.Struct(s)

	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)

	if !ok {
		return domain.NewValidationError([]domain.FieldError{
			{Field: "input", Message: err.Error()},
		})
	}

	fields := make([]domain.FieldError, 0, len(validationErrors))

	for _, fieldError := range validationErrors {
		fields = append(fields, domain.FieldError{
			Field:   strings.ToLower(fieldError.Field()),
			Message: fieldError.Translate(v.translator),
		})
	}

	return domain.NewValidationError(fields)
}
