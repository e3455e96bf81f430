// Package jwt реализует генерацию и проверку JWT токенов сессии.
//
// Токен содержит только идентификатор пользователя: роль всегда читается из хранилища.
package jwt

import (
	"time"
)

// Maker описывает генерацию и разбор JWT токенов.
type Maker interface {
	GenerateToken(userUID string) (string, error)
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует Maker на основе секретного ключа и времени жизни токена.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewJWTMaker создаёт MakerImpl.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
