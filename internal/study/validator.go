package study

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when an entity fails validation.
type ValidationError struct {
	Entity string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(msgs, ", "))
}

var (
	validatorOnce sync.Once
	validate      *validator.Validate
	translator    ut.Translator
	validatorErr  error
)

func entityValidator() (*validator.Validate, ut.Translator, error) {
	validatorOnce.Do(func() {
		v := validator.New()

		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ := uni.GetTranslator("en")
		if err := enTranslations.RegisterDefaultTranslations(v, trans); err != nil {
			validatorErr = fmt.Errorf("failed to register default translations: %w", err)
			return
		}

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		custom := map[string]struct {
			fn  validator.Func
			msg string
		}{
			"notblank": {
				fn: func(fl validator.FieldLevel) bool {
					return strings.TrimSpace(fl.Field().String()) != ""
				},
				msg: "{0} must not be blank",
			},
			"eventtype": {
				fn: func(fl validator.FieldLevel) bool {
					_, err := ParseEventType(fl.Field().String())
					return err == nil
				},
				msg: "{0} must be one of test, homework, review, mock_exam, other",
			},
		}
		for tag, c := range custom {
			if err := v.RegisterValidation(tag, c.fn); err != nil {
				validatorErr = fmt.Errorf("failed to register %s validation: %w", tag, err)
				return
			}
			msg := c.msg
			if err := v.RegisterTranslation(tag, trans, func(ut ut.Translator) error {
				return ut.Add(tag, msg, true)
			}, func(ut ut.Translator, fe validator.FieldError) string {
				t, _ := ut.T(fe.Tag(), fe.Field())
				return t
			}); err != nil {
				validatorErr = fmt.Errorf("failed to register %s translation: %w", tag, err)
				return
			}
		}

		validate = v
		translator = trans
	})
	return validate, translator, validatorErr
}

// ValidateStruct checks v's validate tags and returns a *ValidationError
// whose messages name fields by their json tags.
func ValidateStruct(entity string, v any) error {
	return validateEntity(entity, v)
}

func validateEntity(entity string, v any) error {
	validate, trans, err := entityValidator()
	if err != nil {
		return err
	}
	if err := validate.Struct(v); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return fmt.Errorf("validate %s: %w", entity, err)
		}
		verr := &ValidationError{Entity: entity}
		for _, fe := range validationErrors {
			verr.Fields = append(verr.Fields, FieldError{
				Field:   fe.Field(),
				Message: fe.Translate(trans),
			})
		}
		return verr
	}
	return nil
}

// Validate checks the profile invariants: a name, an email containing "@"
// and a grade between 1 and 3.
func (u User) Validate() error {
	return validateEntity("user", u)
}

// Validate requires a positive duration and, when present, a satisfaction
// score between 1 and 5.
func (s StudySession) Validate() error {
	return validateEntity("study session", s)
}

func (q Quiz) Validate() error {
	return validateEntity("quiz", q)
}

func (r QuizResult) Validate() error {
	return validateEntity("quiz result", r)
}

func (e ScheduleEntry) Validate() error {
	return validateEntity("schedule entry", e)
}
