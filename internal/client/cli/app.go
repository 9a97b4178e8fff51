package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/eventdesk/internal/client/client"
	"github.com/dmitrijs2005/eventdesk/internal/client/config"
	"github.com/dmitrijs2005/eventdesk/internal/client/guard"
	"github.com/dmitrijs2005/eventdesk/internal/client/models"
	"github.com/dmitrijs2005/eventdesk/internal/client/nav"
	"github.com/dmitrijs2005/eventdesk/internal/client/repositories/session"
	"github.com/dmitrijs2005/eventdesk/internal/client/storage"
	"github.com/dmitrijs2005/eventdesk/internal/logging"

	_ "modernc.org/sqlite"
)

// MemoryDSN keeps the session in process memory instead of a SQLite file.
const MemoryDSN = ":memory:"

type App struct {
	config   *config.Config
	logger   logging.Logger
	client   client.Client
	sessions session.Repository
	guard    *guard.Guard
	closeFn  func() error

	view    nav.View
	changed bool
	user    *models.UserProfile

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewTextLogger(os.Stderr, c.LogLevel)

	var (
		sessions session.Repository
		closeFn  = func() error { return nil }
	)
	if c.SessionDBPath == MemoryDSN {
		sessions = session.NewMemoryRepository()
	} else {
		db, err := storage.InitDatabase(ctx, c.SessionDBPath)
		if err != nil {
			logger.Error(ctx, "error initializing session database", "path", c.SessionDBPath, "error", err)
			return nil, err
		}
		sessions = session.NewSQLiteRepository(db)
		closeFn = db.Close
	}

	apiClient, err := client.NewHTTPClient(c.APIBaseURL,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(logger.With("component", "gateway")),
	)
	if err != nil {
		_ = closeFn()
		return nil, err
	}

	a := newApp(apiClient, sessions, logger, bufio.NewReader(os.Stdin), os.Stdout)
	a.config = c
	a.closeFn = closeFn
	return a, nil
}

func newApp(c client.Client, sessions session.Repository, logger logging.Logger, r *bufio.Reader, w io.Writer) *App {
	a := &App{
		logger:   logger,
		client:   c,
		sessions: sessions,
		closeFn:  func() error { return nil },
		reader:   r,
		out:      w,
		now:      time.Now,
	}
	a.guard = guard.New(sessions, a, logger)
	return a
}

// Navigate implements nav.Navigator. The new view is shown by the next
// call to render.
func (a *App) Navigate(v nav.View) {
	if v != nav.ViewDashboard {
		a.user = nil
	}
	a.view = v
	a.changed = true
}

// Run shows the dashboard when a session is already stored, the landing
// page otherwise, and then reads commands until the user exits.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.closeFn(); err != nil {
			a.logger.Warn(ctx, "closing session store failed", "error", err)
		}
	}()

	fmt.Fprintln(a.out, "Welcome to EventDesk CLI (type 'help' for commands)")
	a.start(ctx)
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) start(ctx context.Context) {
	s, err := a.sessions.Load(ctx)
	if err != nil {
		a.logger.Warn(ctx, "loading session failed", "error", err)
	}
	if s != nil {
		a.open(ctx, nav.ViewDashboard)
		return
	}
	a.open(ctx, nav.ViewLanding)
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}
