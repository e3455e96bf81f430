package submit

import (
	"context"

	"github.com/magabrotheeeer/itlearnpro/internal/models"
	"github.com/magabrotheeeer/itlearnpro/internal/services/contact"
)

type Service interface {
	Submit(ctx context.Context, in contact.Input, ip string) (*models.ContactMessage, error)
}
