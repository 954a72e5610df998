package validator

import (
	"context"
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validate is the shared validator instance
var Validate Validator = New()

// phone accepts an optional leading +, then 10 to 15 digits with common separators.
var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()\-.]{8,18}[0-9]$`)

type validatorImpl struct {
	validate *validator.Validate
	trans    ut.Translator
}

// New creates a validator with English messages and the "phone" rule registered
func New(opts ...Option) Validator {
	v := &validatorImpl{validate: validator.New()}

	// report json names so messages match the wire format
	v.validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	locale := en.New()
	v.trans, _ = ut.New(locale, locale).GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v.validate, v.trans)
	_ = v.validate.RegisterTranslation("phone", v.trans,
		func(t ut.Translator) error {
			return t.Add("phone", "{0} must be a valid phone number", true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T("phone", fe.Field())
			return msg
		},
	)

	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *validatorImpl) Struct(s any) error {
	if s == nil {
		return errors.New("validation target cannot be nil")
	}
	return v.translate(v.validate.Struct(s))
}

func (v *validatorImpl) StructCtx(ctx context.Context, s any) error {
	if s == nil {
		return errors.New("validation target cannot be nil")
	}
	return v.translate(v.validate.StructCtx(ctx, s))
}

func (v *validatorImpl) Engine() *validator.Validate {
	return v.validate
}

func (v *validatorImpl) translate(err error) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}

	out := &validationErrors{fields: make([]FieldError, 0, len(ves))}
	for _, fe := range ves {
		out.fields = append(out.fields, &fieldError{
			field:   fe.Field(),
			tag:     fe.Tag(),
			value:   fe.Value(),
			message: fe.Translate(v.trans),
		})
	}
	return out
}
