// Package customvalidator собирает валидатор с английскими сообщениями,
// именами полей из json-тегов и нашими правилами.
package customvalidator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	apperrors "crm-console/pkg/errors"
)

// Service держит экземпляр валидатора и переводчик сообщений.
type Service struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	once    sync.Once
	service *Service
	initErr error
)

// New возвращает общий экземпляр, создавая его при первом вызове.
func New() (*Service, error) {
	once.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonTagName)

		if err := en_translations.RegisterDefaultTranslations(v, trans); err != nil {
			initErr = err
			return
		}
		if err := RegisterCustomValidations(v, trans); err != nil {
			initErr = err
			return
		}
		service = &Service{Validator: v, Translator: trans}
	})
	return service, initErr
}

func jsonTagName(fld reflect.StructField) string {
	tag := fld.Tag.Get("json")
	if tag == "-" || tag == "" {
		return fld.Name
	}
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	return tag
}

// RegisterCustomValidations регистрирует правила и их сообщения.
func RegisterCustomValidations(v *validator.Validate, trans ut.Translator) error {
	rules := []struct {
		tag     string
		fn      validator.Func
		message string
	}{
		{"strong_password", isStrongPassword, "{0} must be at least 12 characters and include upper and lower case letters, a digit and a special character"},
		{"page_size", isAllowedPageSize, "{0} must be one of 5, 10, 20, 50, 100"},
		{"phone", isPhoneNumber, "{0} must be a valid phone number"},
	}

	for _, r := range rules {
		if err := v.RegisterValidation(r.tag, r.fn); err != nil {
			return err
		}
		msg := r.message
		tag := r.tag
		err := v.RegisterTranslation(tag, trans,
			func(ut ut.Translator) error { return ut.Add(tag, msg, true) },
			func(ut ut.Translator, fe validator.FieldError) string {
				t, _ := ut.T(tag, fe.Field())
				return t
			},
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// Struct проверяет структуру и превращает нарушения в ApplicationError с картой полей.
func (s *Service) Struct(v any) error {
	err := s.Validator.Struct(v)
	if err == nil {
		return nil
	}
	fields := s.FieldErrors(err)
	if fields == nil {
		return err
	}
	return apperrors.NewApplicationError("Validation failed", fields)
}

// FieldErrors - {"field": ["message"]} в формате поля errors конверта.
func (s *Service) FieldErrors(err error) map[string][]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = append(out[fe.Field()], fe.Translate(s.Translator))
	}
	return out
}

// EchoValidator - адаптер для echo.Echo.Validator.
type EchoValidator struct {
	svc *Service
}

func NewEchoValidator(svc *Service) *EchoValidator {
	return &EchoValidator{svc: svc}
}

func (ev *EchoValidator) Validate(i interface{}) error {
	return ev.svc.Struct(i)
}

var phoneRe = regexp.MustCompile(`^\+?[0-9 ()\-]{6,20}$`)

func isPhoneNumber(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	return s == "" || phoneRe.MatchString(s)
}

func isAllowedPageSize(fl validator.FieldLevel) bool {
	switch fl.Field().Int() {
	case 5, 10, 20, 50, 100:
		return true
	}
	return false
}

// IsStrongPassword: не короче 12 символов, есть строчная, заглавная, цифра и спецсимвол.
func IsStrongPassword(s string) bool {
	if len([]rune(s)) < 12 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	return upper && lower && digit && special
}

func isStrongPassword(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}
