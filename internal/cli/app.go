package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/trackly/internal/common"
	"github.com/dmitrijs2005/trackly/internal/models"
)

type AuthService interface {
	Register(ctx context.Context, email, password string) (*models.PublicUser, error)
	Login(ctx context.Context, email, password string) (*models.PublicUser, error)
	Logout(ctx context.Context) error
	CurrentIdentity(ctx context.Context) (*models.PublicUser, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.PublicUser, error)
	UploadAvatar(ctx context.Context, data []byte) (string, error)
}

type ProjectService interface {
	List(ctx context.Context) ([]*models.Project, error)
	Create(ctx context.Context, name, color string) (*models.Project, error)
	Update(ctx context.Context, id int64, upd models.ProjectUpdate) (*models.Project, error)
	Delete(ctx context.Context, id int64) error
}

type SessionService interface {
	Active(ctx context.Context) (*models.Session, error)
	Start(ctx context.Context, projectID *int64) (*models.Session, error)
	Finalize(ctx context.Context, sessionID int64, description string, tags []string) error
	Cancel(ctx context.Context) error
	ListFinished(ctx context.Context) ([]*models.FinishedSession, error)
}

type StatsService interface {
	Summary(ctx context.Context, days int) (*models.Stats, error)
}

// readFile is a test seam for avatar uploads.
var readFile = os.ReadFile

type App struct {
	auth     AuthService
	projects ProjectService
	sessions SessionService
	stats    StatsService

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(auth AuthService, projects ProjectService, sessions SessionService, stats StatsService, in io.Reader, out io.Writer) *App {
	return &App{
		auth:     auth,
		projects: projects,
		sessions: sessions,
		stats:    stats,
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

// Run blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	a.println("Welcome to trackly (type 'help' for commands)")
	if u, err := a.auth.CurrentIdentity(ctx); err == nil {
		a.printf("Logged in as %s\n", u.Email)
	}
	runREPL(ctx, a, a.reader)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	_, err := a.auth.CurrentIdentity(ctx)
	return err == nil
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// report prints err in user terms.
func (a *App) report(err error) {
	switch {
	case errors.Is(err, common.ErrNotAuthenticated):
		a.println("Please log in first.")
	case errors.Is(err, common.ErrInvalidCredentials):
		a.println("Invalid email or password.")
	case errors.Is(err, common.ErrDuplicateEmail):
		a.println("This email is already registered.")
	case errors.Is(err, common.ErrSessionAlreadyActive):
		a.println("A session is already running. Stop or cancel it first.")
	case errors.Is(err, common.ErrInvalidSessionState):
		a.println("That session cannot be finished.")
	case errors.Is(err, common.ErrNotFound):
		a.println("Not found.")
	case errors.Is(err, common.ErrMissingCredential):
		a.println("Your current password is required to set a new one.")
	case errors.Is(err, common.ErrWrongCredential):
		a.println("Current password is incorrect.")
	case errors.Is(err, common.ErrPasswordTooShort):
		a.println("Password is too short.")
	case errors.Is(err, common.ErrInvalidEmail):
		a.println("That does not look like an email address.")
	case errors.Is(err, common.ErrInvalidName):
		a.println("Name must not be empty.")
	case errors.Is(err, common.ErrInvalidImage):
		a.println("Unsupported or broken image.")
	default:
		a.println("Error:", err)
	}
}
