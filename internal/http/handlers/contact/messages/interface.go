package messages

import (
	"context"

	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

type Service interface {
	ListMessages(ctx context.Context) ([]models.ContactMessage, error)
}
