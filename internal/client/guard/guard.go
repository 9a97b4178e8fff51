// Package guard decides whether a protected view may be shown.
package guard

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/eventdesk/internal/client/models"
	"github.com/dmitrijs2005/eventdesk/internal/client/nav"
	"github.com/dmitrijs2005/eventdesk/internal/client/repositories/session"
	"github.com/dmitrijs2005/eventdesk/internal/logging"
)

type Guard struct {
	sessions session.Repository
	nav      nav.Navigator
	logger   logging.Logger
}

func New(sessions session.Repository, n nav.Navigator, logger logging.Logger) *Guard {
	return &Guard{sessions: sessions, nav: n, logger: logger}
}

// Enter returns the signed-in user. Without a session it redirects to the
// login view and reports false. An unreadable store counts as no session.
func (g *Guard) Enter(ctx context.Context) (*models.UserProfile, bool) {
	s, err := g.sessions.Load(ctx)
	if err != nil {
		g.logger.Warn(ctx, "loading session failed", "error", err)
	}
	if err != nil || s == nil {
		g.nav.Navigate(nav.ViewLogin)
		return nil, false
	}

	u := s.User
	return &u, true
}

// Logout removes the stored session and returns to the login view.
func (g *Guard) Logout(ctx context.Context) error {
	if err := g.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	g.logger.Info(ctx, "logged out")
	g.nav.Navigate(nav.ViewLogin)
	return nil
}
