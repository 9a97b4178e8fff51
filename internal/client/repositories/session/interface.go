package session

import (
	"context"

	"github.com/dmitrijs2005/eventdesk/internal/client/models"
)

const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Repository reads, writes and clears the persisted session.
//
// Load returns (nil, nil) when there is no complete session; an error means
// the backing storage itself failed. Clear is idempotent.
type Repository interface {
	Save(ctx context.Context, s models.Session) error
	Load(ctx context.Context) (*models.Session, error)
	Clear(ctx context.Context) error
}
