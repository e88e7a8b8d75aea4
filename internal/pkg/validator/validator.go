package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/futig/interview-backend/internal/entity"
	"github.com/go-playground/validator/v10"
)

// Validator checks request DTOs and generated entities against their struct tags.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	v.RegisterStructValidation(mcItemIndexInRange, entity.MCItem{})

	return &Validator{validate: v}
}

// Struct validates s. Violations come back wrapped in entity.ErrInvalidParameter
// with the failing fields named by their JSON keys.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", entity.ErrInvalidParameter, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s must satisfy %s", fe.Field(), fe.Tag()))
	}

	return fmt.Errorf("%w: %s", entity.ErrInvalidParameter, strings.Join(msgs, "; "))
}

func (v *Validator) ValidateAnswer(req *entity.AnswerRequest) error {
	if req.Answer == nil {
		return fmt.Errorf("%w: answer", entity.ErrMissingField)
	}
	return v.Struct(req)
}

func (v *Validator) ValidateTechnicalQuestion(req *entity.TechnicalQuestionRequest) error {
	return v.Struct(req)
}

func mcItemIndexInRange(sl validator.StructLevel) {
	item, ok := sl.Current().Interface().(entity.MCItem)
	if !ok {
		return
	}
	if item.CorrectIndex >= len(item.Options) {
		sl.ReportError(item.CorrectIndex, "correct_index", "CorrectIndex", "ltlen", "options")
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}
