package client

import (
	"context"

	"github.com/dmitrijs2005/eventdesk/internal/client/models"
)

// RegisterRequest carries the registration form fields as sent on the wire.
type RegisterRequest struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Role            models.Role
}

// Avatar is an optional image attached to a registration.
type Avatar struct {
	Filename string
	Data     []byte
}

type Client interface {
	// Login authenticates and returns the session to persist.
	Login(ctx context.Context, email, password string) (*models.Session, error)
	// Register creates an account. It does not authenticate; the returned
	// profile is whatever the service echoed back and may be empty.
	Register(ctx context.Context, req RegisterRequest, avatar *Avatar) (*models.UserProfile, error)
	// RequestPasswordReset asks the service to e-mail a reset link and
	// returns the confirmation text to display.
	RequestPasswordReset(ctx context.Context, email string) (string, error)
}
