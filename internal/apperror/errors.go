package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Доменные ошибки сервиса. Слой handler сопоставляет их с HTTP статусами,
// слой service возвращает их (возможно обернутыми через %w).
var (
	ErrBadRequest   = errors.New("некорректный запрос")
	ErrConflict     = errors.New("значение уже занято")
	ErrNotFound     = errors.New("пользователь не найден")
	ErrUnauthorized = errors.New("не авторизован")
	ErrForbidden    = errors.New("токен просрочен или уже использован")
	ErrUploadFailed = errors.New("не удалось загрузить файл")
	ErrInternal     = errors.New("внутренняя ошибка сервера")
)

// Wrap оборачивает причину в доменную ошибку, сохраняя обе в цепочке,
// чтобы errors.Is работал и для kind, и для cause.
func Wrap(kind error, cause error) error {
	if cause == nil {
		return kind
	}
	return fmt.Errorf("%w: %w", kind, cause)
}

// WithMessage возвращает доменную ошибку с уточняющим сообщением.
func WithMessage(kind error, message string) error {
	return fmt.Errorf("%w: %s", kind, message)
}

// PublicMessage возвращает текст ошибки, пригодный для отправки клиенту.
// Для внутренних ошибок и ошибок загрузки причина (текст драйвера, SQL,
// ответ хранилища) не раскрывается — она остается в логах сервера.
func PublicMessage(err error) string {
	switch {
	case errors.Is(err, ErrInternal):
		return ErrInternal.Error()
	case errors.Is(err, ErrUploadFailed):
		return ErrUploadFailed.Error()
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrForbidden):
		return err.Error()
	default:
		return ErrInternal.Error()
	}
}

// StatusOf сопоставляет доменную ошибку с HTTP статусом.
// Неизвестные ошибки считаются внутренними.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUploadFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
