package read

import (
	"context"

	"github.com/magabrotheeeer/itlearnpro/internal/services/profile"
)

type Service interface {
	GetProfile(ctx context.Context, userUID string) (*profile.Profile, error)
}
