// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов об ошибках HTTP‑обработчиков.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// ErrorResponse описывает JSON‑ответ с ошибкой.
// Используется и в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"Token invalide"`
}

// Message ответ с единственным полем message.
type Message struct {
	Message string `json:"message"`
}

const (
	// StatusError значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// Error возвращает ErrorResponse с переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationError формирует ответ на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("le champ %s est requis", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("le champ %s doit être un email valide", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("le champ %s doit contenir au moins %s caractères", err.Field(), err.Param()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("le champ %s doit contenir au plus %s caractères", err.Field(), err.Param()))
		case "url":
			errsMsgs = append(errsMsgs, fmt.Sprintf("le champ %s doit être une URL valide", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("le champ %s n'est pas valide", err.Field()))
		}
	}
	return Error(strings.Join(errsMsgs, ", "))
}
