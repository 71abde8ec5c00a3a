package web

import (
	"UserAccountBackend/internal/apperror"
	"encoding/json"
	"log"
	"net/http"
)

// APIResponse — единый формат всех ответов API.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// JSON отправляет успешный ответ.
func JSON(writer http.ResponseWriter, status int, data any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)

	response := APIResponse{
		Success: true,
		Data:    data,
	}

	if err := json.NewEncoder(writer).Encode(&response); err != nil {
		log.Printf("ошибка сериализации ответа: %v", err)
	}
}

// Error отправляет ответ об ошибке. Доменные ошибки из apperror
// сопоставляются с HTTP статусами через apperror.StatusOf, текст
// проходит через apperror.PublicMessage.
func Error(writer http.ResponseWriter, err error) {
	ErrorWithMessage(writer, apperror.StatusOf(err), apperror.PublicMessage(err))
}

// ErrorWithMessage отправляет ответ об ошибке с явным статусом и сообщением.
func ErrorWithMessage(writer http.ResponseWriter, status int, message string) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)

	response := APIResponse{
		Success: false,
		Message: message,
	}

	if err := json.NewEncoder(writer).Encode(&response); err != nil {
		log.Printf("ошибка сериализации ответа: %v", err)
	}
}
