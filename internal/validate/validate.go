// Package validate wraps go-playground/validator with English messages keyed
// by the JSON field path, ready to be rendered inline next to form inputs.
package validate

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"unicode"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Errors maps a field path such as "origin" or "passengers[0].firstName" to a
// human readable message.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether the field has an error. Handy in templates.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Add records msg for field unless the field already has a message.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// AsErrors extracts validation errors from err.
func AsErrors(err error) (Errors, bool) {
	var ve Errors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func New() *Validator {
	v := &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}

	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	v.trans, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v.validate, v.trans)
	v.registerTranslations()

	return v
}

func (v *Validator) registerTranslations() {
	texts := map[string]string{
		"required":   "{0} is required",
		"email":      "Invalid email format",
		"min":        "{0} must be at least {1}",
		"min-string": "{0} must be at least {1} characters",
		"eqfield":    "{0} does not match",
		"datetime":   "{0} must be a valid date",
	}
	for key, text := range texts {
		_ = v.trans.Add(key, text, true)
	}

	for _, tag := range []string{"required", "email", "min", "eqfield", "datetime"} {
		_ = v.validate.RegisterTranslation(tag, v.trans,
			func(ut.Translator) error { return nil },
			func(t ut.Translator, fe validator.FieldError) string {
				key := fe.Tag()
				if key == "min" && fe.Kind() == reflect.String {
					key = "min-string"
				}
				msg, err := t.T(key, Label(fe.Field()), fe.Param())
				if err != nil {
					return fe.Error()
				}
				return msg
			})
	}
}

// Struct validates s and returns nil or Errors.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := make(Errors, len(fieldErrs))
	for _, fe := range fieldErrs {
		out.Add(fieldPath(fe.Namespace()), fe.Translate(v.trans))
	}
	return out
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// Label turns a camelCase field name into a sentence-case label:
// "travelDate" becomes "Travel date".
func Label(field string) string {
	if field == "" {
		return field
	}
	var b strings.Builder
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteByte(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
