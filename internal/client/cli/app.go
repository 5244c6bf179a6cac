package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/insider/internal/client/client"
	"github.com/dmitrijs2005/insider/internal/client/config"
	"github.com/dmitrijs2005/insider/internal/client/localdb"
	"github.com/dmitrijs2005/insider/internal/client/services"
	"github.com/dmitrijs2005/insider/internal/client/stores"
	"github.com/dmitrijs2005/insider/internal/client/tokenstore"
	"github.com/dmitrijs2005/insider/internal/filex"
	"github.com/dmitrijs2005/insider/internal/logging"
)

// App is the terminal client: the stores plus the terminal they render to.
type App struct {
	config *config.Config
	db     *sql.DB
	log    logging.Logger

	auth        *stores.AuthStore
	events      *stores.EventStore
	investments *stores.InvestmentStore

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time
}

// NewApp opens the session database and builds the client stack described
// by c. Logs go to stderr so they don't interleave with REPL output.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(os.Stderr, c.LogFormat, c.LogLevel)

	if c.DatabasePath != localdb.MemoryDSN {
		if _, err := filex.EnsureParentDir(c.DatabasePath); err != nil {
			return nil, err
		}
	}

	db, err := localdb.Open(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	httpClient, err := client.NewHTTPClient(client.Config{
		BaseURL:   c.APIBaseURL,
		Timeout:   c.RequestTimeout,
		RateLimit: c.RateLimit,
		Logger:    log,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	var opts []tokenstore.Option
	if c.StorageSecret != "" {
		opts = append(opts, tokenstore.WithSecret(c.StorageSecret))
	}

	a := newApp(c, db, httpClient, tokenstore.New(db, opts...), log)
	return a, nil
}

func newApp(c *config.Config, db *sql.DB, httpClient client.Client, tokens stores.TokenStore, log logging.Logger) *App {
	return &App{
		config:      c,
		db:          db,
		log:         log,
		auth:        stores.NewAuthStore(httpClient, services.NewAuthService(httpClient), tokens, log),
		events:      stores.NewEventStore(services.NewEventService(httpClient), c.PageSize, log),
		investments: stores.NewInvestmentStore(services.NewInvestmentService(httpClient), c.PageSize, log),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		now:         time.Now,
	}
}

// Run restores the saved session and serves the REPL until the user exits
// or stdin is closed.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	if err := a.auth.Initialize(ctx); err != nil {
		a.log.Warn(ctx, "could not restore session", "error", err)
	}

	fmt.Fprintln(a.out, "Welcome to Insider (type 'help' for commands)")
	if st := a.auth.State(); st.IsAuthenticated {
		fmt.Fprintf(a.out, "Signed in as %s\n", st.User.Email)
		if st.NeedsProfileCompletion {
			fmt.Fprintln(a.out, "Your profile is incomplete, run 'complete-profile'")
		}
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.auth.State().IsAuthenticated
}

func (a *App) getStatus() string {
	st := a.auth.State()
	switch st.Phase() {
	case stores.PhaseReady:
		return fmt.Sprintf("(%s)", st.User.Email)
	case stores.PhaseNeedsProfile:
		return fmt.Sprintf("(%s, profile incomplete)", st.User.Email)
	default:
		return ""
	}
}

// report prints err for the user. Responses superseded by a newer request
// are not failures from the user's point of view.
func (a *App) report(err error) error {
	if err == nil || errors.Is(err, stores.ErrStale) {
		return nil
	}
	fmt.Fprintln(a.out, "Error:", client.ExtractErrorMessage(err, ""))
	return err
}
