package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	appErrors "github.com/noah-isme/afterschool-api/pkg/errors"
)

var courseDaysPattern = regexp.MustCompile(`^(Mon|Tue|Wed|Thu|Fri|Sat|Sun)(,(Mon|Tue|Wed|Thu|Fri|Sat|Sun))*$`)

// Validator wraps go-playground/validator with English error translations
// and the domain specific tags used by request payloads.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// New builds a Validator with the custom tags registered.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	locale := en.New()
	uni := ut.New(locale, locale)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(v, trans)

	out := &Validator{validate: v, trans: trans}
	out.register("role", "{0} must be one of STUDENT, TEACHER, ADMIN", oneOfUpper("STUDENT", "TEACHER", "ADMIN"))
	out.register("attendance_status", "{0} must be one of PRESENT, ABSENT, LATE", oneOfUpper("PRESENT", "ABSENT", "LATE"))
	out.register("question_type", "{0} must be MULTIPLE_CHOICE or TEXT", oneOfUpper("MULTIPLE_CHOICE", "TEXT"))
	out.register("course_days", "{0} must list weekdays like Tue,Thu", func(fl validator.FieldLevel) bool {
		return courseDaysPattern.MatchString(fl.Field().String())
	})
	return out
}

func (v *Validator) register(tag, message string, fn validator.Func) {
	_ = v.validate.RegisterValidation(tag, fn)
	_ = v.validate.RegisterTranslation(tag, v.trans,
		func(t ut.Translator) error { return t.Add(tag, message, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field())
			return msg
		},
	)
}

func oneOfUpper(values ...string) validator.Func {
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}
	return func(fl validator.FieldLevel) bool {
		_, ok := allowed[strings.ToUpper(fl.Field().String())]
		return ok
	}
}

// Struct validates s and returns a VALIDATION_ERROR carrying per-field messages.
func (v *Validator) Struct(s interface{}, message string) error {
	if err := v.validate.Struct(s); err != nil {
		if message == "" {
			message = appErrors.ErrValidation.Message
		}
		appErr := appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
		appErr.Details = v.Translate(err)
		return appErr
	}
	return nil
}

// Translate maps a validation error to field name -> readable message.
func (v *Validator) Translate(err error) map[string]string {
	fields := make(map[string]string)
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Namespace()[strings.Index(fe.Namespace(), ".")+1:]] = fe.Translate(v.trans)
		}
		return fields
	}
	fields["detail"] = err.Error()
	return fields
}
