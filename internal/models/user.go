// Package models содержит доменные структуры платформы и их JSON-представление.
//
// Идентификаторы сериализуются в поле "_id": клиентское приложение ожидает именно его.
package models

import "time"

// Роли пользователя.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User зарегистрированный пользователь. Хеш пароля никогда не сериализуется.
type User struct {
	UUID           string    `json:"_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	SelectedBranch *string   `json:"selectedBranch"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
