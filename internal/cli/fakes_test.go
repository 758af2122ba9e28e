package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/trackly/internal/common"
	"github.com/dmitrijs2005/trackly/internal/models"
)

type fakeAuth struct {
	user *models.PublicUser

	registered []string
	passwords  []string
	profile    models.ProfileUpdate
	avatar     []byte

	err error
}

func (f *fakeAuth) Register(_ context.Context, email, password string) (*models.PublicUser, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.registered = append(f.registered, email)
	f.passwords = append(f.passwords, password)
	return &models.PublicUser{ID: 1, Email: email}, nil
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (*models.PublicUser, error) {
	f.passwords = append(f.passwords, password)
	if f.err != nil {
		return nil, f.err
	}
	f.user = &models.PublicUser{ID: 1, Email: email}
	return f.user, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	if f.user == nil {
		return common.ErrNotAuthenticated
	}
	f.user = nil
	return nil
}

func (f *fakeAuth) CurrentIdentity(context.Context) (*models.PublicUser, error) {
	if f.user == nil {
		return nil, common.ErrNotAuthenticated
	}
	return f.user, nil
}

func (f *fakeAuth) UpdateProfile(_ context.Context, upd models.ProfileUpdate) (*models.PublicUser, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.profile = upd
	if upd.DisplayName != nil {
		f.user.DisplayName = upd.DisplayName
	}
	if upd.Email != nil {
		f.user.Email = *upd.Email
	}
	return f.user, nil
}

func (f *fakeAuth) UploadAvatar(_ context.Context, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.avatar = data
	return "avatars/1/a.png", nil
}

type fakeProjects struct {
	list    []*models.Project
	created []string
	updated models.ProjectUpdate
	deleted []int64
	err     error
}

func (f *fakeProjects) List(context.Context) ([]*models.Project, error) {
	return f.list, f.err
}

func (f *fakeProjects) Create(_ context.Context, name, color string) (*models.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, name+"|"+color)
	return &models.Project{ID: int64(len(f.created)), Name: name, Color: color}, nil
}

func (f *fakeProjects) Update(_ context.Context, id int64, upd models.ProjectUpdate) (*models.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.updated = upd
	p := &models.Project{ID: id, Name: "old", Color: "#000000"}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Color != nil {
		p.Color = *upd.Color
	}
	return p, nil
}

func (f *fakeProjects) Delete(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type finalizeCall struct {
	id   int64
	desc string
	tags []string
}

type fakeSessions struct {
	active    *models.Session
	finished  []*models.FinishedSession
	started   []*int64
	finalized []finalizeCall
	cancelled int
	err       error
}

func (f *fakeSessions) Active(context.Context) (*models.Session, error) {
	return f.active, f.err
}

func (f *fakeSessions) Start(_ context.Context, projectID *int64) (*models.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.started = append(f.started, projectID)
	f.active = &models.Session{ID: 7, ProjectID: projectID, StartTime: now(), Status: models.StatusRunning}
	return f.active, nil
}

func (f *fakeSessions) Finalize(_ context.Context, id int64, desc string, tags []string) error {
	if f.err != nil {
		return f.err
	}
	f.finalized = append(f.finalized, finalizeCall{id, desc, tags})
	f.active = nil
	return nil
}

func (f *fakeSessions) Cancel(context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.cancelled++
	f.active = nil
	return nil
}

func (f *fakeSessions) ListFinished(context.Context) ([]*models.FinishedSession, error) {
	return f.finished, f.err
}

type fakeStats struct {
	days []int
	out  *models.Stats
	err  error
}

func (f *fakeStats) Summary(_ context.Context, days int) (*models.Stats, error) {
	f.days = append(f.days, days)
	return f.out, f.err
}

type harness struct {
	app      *App
	auth     *fakeAuth
	projects *fakeProjects
	sessions *fakeSessions
	stats    *fakeStats
	out      *bytes.Buffer
}

// newHarness builds an App reading the given lines; passwords come from the
// same input since the terminal is stubbed out.
func newHarness(t *testing.T, lines ...string) *harness {
	t.Helper()
	stubTerminal(t, false, nil, nil)

	h := &harness{
		auth:     &fakeAuth{},
		projects: &fakeProjects{},
		sessions: &fakeSessions{},
		stats:    &fakeStats{out: &models.Stats{}},
		out:      &bytes.Buffer{},
	}
	in := strings.Join(lines, "\n")
	if len(lines) > 0 {
		in += "\n"
	}
	h.app = NewApp(h.auth, h.projects, h.sessions, h.stats, strings.NewReader(in), h.out)
	return h
}

func (h *harness) login() *harness {
	h.auth.user = &models.PublicUser{ID: 1, Email: "alice@example.com"}
	return h
}
