package apperror

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusConflict, StatusOf(Wrap(ErrConflict, fmt.Errorf("дубликат"))))
	assert.Equal(t, http.StatusBadGateway, StatusOf(ErrUploadFailed))
	// неизвестная ошибка считается внутренней
	assert.Equal(t, http.StatusInternalServerError, StatusOf(fmt.Errorf("что-то пошло не так")))
}

func TestPublicMessage_HidesInternalCause(t *testing.T) {
	cause := fmt.Errorf(`pq: duplicate key value violates unique constraint "users_email_key"`)

	message := PublicMessage(Wrap(ErrInternal, cause))
	assert.Equal(t, ErrInternal.Error(), message)
	assert.NotContains(t, message, "pq:")

	// причина ошибки хранилища тоже не уходит клиенту
	message = PublicMessage(Wrap(ErrUploadFailed, fmt.Errorf("operation error S3: PutObject, dial tcp: connection refused")))
	assert.Equal(t, ErrUploadFailed.Error(), message)
}

func TestPublicMessage_KeepsClientFacingText(t *testing.T) {
	err := WithMessage(ErrUnauthorized, "неверный пароль")
	assert.Equal(t, "не авторизован: неверный пароль", PublicMessage(err))

	// ошибка без доменного вида маскируется как внутренняя
	assert.Equal(t, ErrInternal.Error(), PublicMessage(fmt.Errorf("сырой текст драйвера")))
}
