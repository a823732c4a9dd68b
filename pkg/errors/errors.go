package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// JWT и токены
	ErrInvalidSigningMethod = fmt.Errorf("неверный метод подписи токена")
	ErrInvalidToken         = fmt.Errorf("недопустимый токен")
	ErrTokenExpired         = fmt.Errorf("срок действия токена истёк")
	ErrTokenNotYetValid     = fmt.Errorf("токен ещё не активен")

	// Авторизация
	ErrEmptyAuthHeader     = fmt.Errorf("заголовок авторизации отсутствует")
	ErrInvalidAuthHeader   = fmt.Errorf("неверный формат заголовка авторизации")
	ErrInvalidCredentials  = fmt.Errorf("неверные учётные данные")
	ErrUnauthorized        = fmt.Errorf("неавторизован")
	ErrForbidden           = fmt.Errorf("доступ запрещён")
	ErrPasswordChangeFirst = fmt.Errorf("требуется смена пароля")

	// Сессии консоли
	ErrSessionNotFound = fmt.Errorf("сессия не найдена или истекла")

	// Контекст
	ErrUserIDNotFoundInContext = fmt.Errorf("UserID не найден в контексте запроса")

	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrBadRequest = fmt.Errorf("неверный запрос")

	// Хранилище
	ErrAlreadyExists = fmt.Errorf("запись уже существует")
	ErrInUse         = fmt.Errorf("запись используется другими записями")

	// ErrTransport - удалённый API недоступен или ответил не по протоколу.
	ErrTransport = fmt.Errorf("ошибка транспорта")
)

// HttpError несёт HTTP-код, сообщение для пользователя и внутреннюю причину для логов.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, ctx map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: ctx}
}

// ApplicationError - ответ удалённого API со status == "error".
// Fields заполнено, если ошибка относится к полям формы.
type ApplicationError struct {
	Message string
	Fields  map[string][]string
}

func (e *ApplicationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "application error"
}

// FirstFieldErrors оставляет по одному (первому) сообщению на поле.
func (e *ApplicationError) FirstFieldErrors() map[string]string {
	if len(e.Fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(e.Fields))
	for field, msgs := range e.Fields {
		if len(msgs) > 0 {
			out[field] = msgs[0]
		}
	}
	return out
}

func NewApplicationError(message string, fields map[string][]string) *ApplicationError {
	return &ApplicationError{Message: message, Fields: fields}
}

// UserMessage возвращает текст, пригодный для показа пользователю.
// Сообщение прикладной ошибки берётся как есть, всё остальное заменяется fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var appErr *ApplicationError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return "Record not found"
	case errors.Is(err, ErrTokenExpired):
		return "Token expired"
	case errors.Is(err, ErrForbidden):
		return "Access denied"
	case errors.Is(err, ErrAlreadyExists):
		return "Record already exists"
	case errors.Is(err, ErrInUse):
		return "Record is in use"
	case StatusCode(err) == http.StatusUnauthorized:
		return "Unauthorized"
	}
	return fallback
}

// StatusCode сопоставляет ошибку с HTTP-кодом ответа.
func StatusCode(err error) int {
	var httpErr *HttpError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrEmptyAuthHeader), errors.Is(err, ErrInvalidAuthHeader),
		errors.Is(err, ErrInvalidToken), errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrUnauthorized), errors.Is(err, ErrSessionNotFound),
		errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInvalidSigningMethod),
		errors.Is(err, ErrUserIDNotFoundInContext):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrPasswordChangeFirst):
		return http.StatusForbidden
	case errors.Is(err, ErrTransport):
		return http.StatusBadGateway
	case errors.Is(err, ErrAlreadyExists), errors.Is(err, ErrInUse):
		return http.StatusConflict
	}
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
