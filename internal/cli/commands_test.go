package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/trackly/internal/common"
	"github.com/dmitrijs2005/trackly/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixNow(t *testing.T, at time.Time) {
	t.Helper()
	orig := now
	t.Cleanup(func() { now = orig })
	now = func() time.Time { return at }
}

func TestRegister_PassesCredentials(t *testing.T) {
	h := newHarness(t, "bob@example.com", "hunter22")
	require.NoError(t, h.app.Register(context.Background(), nil))

	assert.Equal(t, []string{"bob@example.com"}, h.auth.registered)
	assert.Equal(t, []string{"hunter22"}, h.auth.passwords)
	assert.Contains(t, h.out.String(), "Registered bob@example.com")
	assert.NotContains(t, h.out.String(), "hunter22")
}

func TestRegister_InputEnds(t *testing.T) {
	h := newHarness(t, "bob@example.com")
	// password line missing
	h.app.reader = rdr("bob@example.com\n")
	require.Error(t, h.app.Register(context.Background(), nil))
	assert.Empty(t, h.auth.registered)
}

func TestLogin_Success(t *testing.T) {
	h := newHarness(t, "alice@example.com", "secret1")
	require.NoError(t, h.app.Login(context.Background(), nil))
	assert.Contains(t, h.out.String(), "Welcome, alice@example.com!")
	assert.True(t, h.app.isLoggedIn(context.Background()))
}

func TestLogin_ErrorReturned(t *testing.T) {
	h := newHarness(t, "alice@example.com", "nope")
	h.auth.err = common.ErrInvalidCredentials
	err := h.app.Login(context.Background(), nil)
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLogout(t *testing.T) {
	h := newHarness(t).login()
	require.NoError(t, h.app.Logout(context.Background(), nil))
	assert.Contains(t, h.out.String(), "Logged out.")
	assert.ErrorIs(t, h.app.Logout(context.Background(), nil), common.ErrNotAuthenticated)
}

func TestWhoAmI(t *testing.T) {
	h := newHarness(t).login()
	name, av := "Alice", "avatars/1/x.png"
	h.auth.user.DisplayName = &name
	h.auth.user.AvatarURL = &av

	require.NoError(t, h.app.WhoAmI(context.Background(), nil))
	assert.Contains(t, h.out.String(), "Alice <alice@example.com>")
	assert.Contains(t, h.out.String(), "avatar: avatars/1/x.png")
}

func TestProfile_BlankAnswersKeepValues(t *testing.T) {
	h := newHarness(t, "New Name", "", "").login()
	require.NoError(t, h.app.Profile(context.Background(), nil))

	require.NotNil(t, h.auth.profile.DisplayName)
	assert.Equal(t, "New Name", *h.auth.profile.DisplayName)
	assert.Nil(t, h.auth.profile.Email)
	assert.Nil(t, h.auth.profile.Password)
	assert.Nil(t, h.auth.profile.CurrentPassword)
}

func TestProfile_PasswordChangeAsksForCurrent(t *testing.T) {
	h := newHarness(t, "", "new@example.com", "newpass1", "secret1").login()
	require.NoError(t, h.app.Profile(context.Background(), nil))

	require.NotNil(t, h.auth.profile.Email)
	assert.Equal(t, "new@example.com", *h.auth.profile.Email)
	require.NotNil(t, h.auth.profile.Password)
	assert.Equal(t, "newpass1", *h.auth.profile.Password)
	require.NotNil(t, h.auth.profile.CurrentPassword)
	assert.Equal(t, "secret1", *h.auth.profile.CurrentPassword)
	assert.NotContains(t, h.out.String(), "newpass1")
}

func TestProfile_NotLoggedIn(t *testing.T) {
	h := newHarness(t)
	assert.ErrorIs(t, h.app.Profile(context.Background(), nil), common.ErrNotAuthenticated)
}

func TestAvatar(t *testing.T) {
	orig := readFile
	t.Cleanup(func() { readFile = orig })
	readFile = func(name string) ([]byte, error) {
		if name == "me.png" {
			return []byte("png-bytes"), nil
		}
		return nil, os.ErrNotExist
	}

	h := newHarness(t).login()
	require.NoError(t, h.app.Avatar(context.Background(), []string{"me.png"}))
	assert.Equal(t, []byte("png-bytes"), h.auth.avatar)
	assert.Contains(t, h.out.String(), "Avatar saved: avatars/1/a.png")

	require.ErrorIs(t, h.app.Avatar(context.Background(), []string{"missing.png"}), os.ErrNotExist)

	h.out.Reset()
	require.NoError(t, h.app.Avatar(context.Background(), nil))
	assert.Contains(t, h.out.String(), "Usage: avatar <path>")
}

func TestListProjects(t *testing.T) {
	h := newHarness(t).login()
	require.NoError(t, h.app.ListProjects(context.Background(), nil))
	assert.Contains(t, h.out.String(), "No projects yet")

	h.out.Reset()
	h.projects.list = []*models.Project{{ID: 1, Name: "Work", Color: "#ff0000"}, {ID: 2, Name: "Home", Color: "#00ff00"}}
	require.NoError(t, h.app.ListProjects(context.Background(), nil))
	assert.Contains(t, h.out.String(), "Work")
	assert.Contains(t, h.out.String(), "Home")
}

func TestAddProject(t *testing.T) {
	h := newHarness(t, "Work", "").login()
	require.NoError(t, h.app.AddProject(context.Background(), nil))
	assert.Equal(t, []string{"Work|"}, h.projects.created)
	assert.Contains(t, h.out.String(), "Created project 1: Work")
}

func TestEditProject(t *testing.T) {
	h := newHarness(t, "", "#123456").login()
	require.NoError(t, h.app.EditProject(context.Background(), []string{"4"}))
	assert.Nil(t, h.projects.updated.Name)
	require.NotNil(t, h.projects.updated.Color)
	assert.Equal(t, "#123456", *h.projects.updated.Color)
	assert.Contains(t, h.out.String(), "Project 4: old #123456")
}

func TestRemoveProject_ArgValidation(t *testing.T) {
	h := newHarness(t).login()

	require.NoError(t, h.app.RemoveProject(context.Background(), nil))
	assert.Contains(t, h.out.String(), "Usage: project-rm <id>")

	require.NoError(t, h.app.RemoveProject(context.Background(), []string{"abc"}))
	assert.Contains(t, h.out.String(), `Invalid id "abc"`)
	assert.Empty(t, h.projects.deleted)

	require.NoError(t, h.app.RemoveProject(context.Background(), []string{"3"}))
	assert.Equal(t, []int64{3}, h.projects.deleted)
}

func TestActive(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	fixNow(t, start.Add(25*time.Minute))

	h := newHarness(t).login()
	require.NoError(t, h.app.Active(context.Background(), nil))
	assert.Contains(t, h.out.String(), "No active session.")

	pid := int64(2)
	h.sessions.active = &models.Session{ID: 5, ProjectID: &pid, StartTime: start, Status: models.StatusRunning}
	h.out.Reset()
	require.NoError(t, h.app.Active(context.Background(), nil))
	assert.Contains(t, h.out.String(), "Session 5 running since")
	assert.Contains(t, h.out.String(), "(25m00s)")
	assert.Contains(t, h.out.String(), "(project #2)")
}

func TestStart(t *testing.T) {
	h := newHarness(t).login()
	require.NoError(t, h.app.Start(context.Background(), nil))
	require.Len(t, h.sessions.started, 1)
	assert.Nil(t, h.sessions.started[0])

	h.sessions.active = nil
	require.NoError(t, h.app.Start(context.Background(), []string{"9"}))
	require.Len(t, h.sessions.started, 2)
	require.NotNil(t, h.sessions.started[1])
	assert.Equal(t, int64(9), *h.sessions.started[1])
	assert.Contains(t, h.out.String(), "(project #9)")
}

func TestStart_AlreadyActive(t *testing.T) {
	h := newHarness(t).login()
	h.sessions.err = common.ErrSessionAlreadyActive
	assert.ErrorIs(t, h.app.Start(context.Background(), nil), common.ErrSessionAlreadyActive)
}

func TestStop_FinalizesWithDescriptionAndTags(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	fixNow(t, start.Add(65*time.Minute))

	h := newHarness(t, "wrote tests", "go, review").login()
	h.sessions.active = &models.Session{ID: 3, StartTime: start, Status: models.StatusRunning}

	require.NoError(t, h.app.Stop(context.Background(), nil))
	require.Len(t, h.sessions.finalized, 1)
	assert.Equal(t, finalizeCall{3, "wrote tests", []string{"go", "review"}}, h.sessions.finalized[0])
	assert.Contains(t, h.out.String(), "Session 3 finished after 1h05m")
}

func TestStop_NothingRunning(t *testing.T) {
	h := newHarness(t).login()
	require.NoError(t, h.app.Stop(context.Background(), nil))
	assert.Contains(t, h.out.String(), "No active session.")
	assert.Empty(t, h.sessions.finalized)
}

func TestCancel(t *testing.T) {
	h := newHarness(t).login()
	require.NoError(t, h.app.Cancel(context.Background(), nil))
	assert.Equal(t, 1, h.sessions.cancelled)
}

func TestHistory(t *testing.T) {
	h := newHarness(t).login()
	require.NoError(t, h.app.History(context.Background(), nil))
	assert.Contains(t, h.out.String(), "No finished sessions.")

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	desc := "design"
	h.sessions.finished = []*models.FinishedSession{
		{ID: 2, StartTime: start, EndTime: start.Add(30 * time.Minute), Description: &desc, Tags: []string{"a", "b"}},
		{ID: 1, StartTime: start, EndTime: start.Add(time.Minute), Tags: []string{}},
	}
	h.out.Reset()
	require.NoError(t, h.app.History(context.Background(), nil))
	out := h.out.String()
	assert.Contains(t, out, "30m00s  design  [a, b]")
	assert.Contains(t, out, "1m00s")
}

func TestStats(t *testing.T) {
	h := newHarness(t).login()
	h.stats.out = &models.Stats{
		Sessions:  3,
		Total:     2 * time.Hour,
		ByTag:     map[string]time.Duration{"go": time.Hour, "docs": 30 * time.Minute},
		ByProject: map[int64]time.Duration{0: time.Hour, 4: time.Hour},
	}

	require.NoError(t, h.app.Stats(context.Background(), nil))
	require.NoError(t, h.app.Stats(context.Background(), []string{"0"}))
	assert.Equal(t, []int{7, 0}, h.stats.days)

	out := h.out.String()
	assert.Contains(t, out, "Last 7 days: 2h00m in 3 sessions")
	assert.Contains(t, out, "All time: 2h00m in 3 sessions")
	assert.Contains(t, out, "(none)")
	assert.Contains(t, out, "#4")

	h.out.Reset()
	require.NoError(t, h.app.Stats(context.Background(), []string{"-1"}))
	assert.Contains(t, h.out.String(), "Usage: stats [days]")
	assert.Len(t, h.stats.days, 2)
}

func TestSortedKeys(t *testing.T) {
	got := sortedKeys(map[string]time.Duration{"b": time.Minute, "a": time.Minute, "c": time.Hour})
	assert.Equal(t, []string{"c", "a", "b"}, got)
}

func TestSortedProjectIDs_TiesByID(t *testing.T) {
	m := map[int64]time.Duration{9: time.Hour, 4: time.Hour, 0: time.Hour, 2: 2 * time.Hour}
	for i := 0; i < 20; i++ {
		assert.Equal(t, []int64{2, 0, 4, 9}, sortedProjectIDs(m))
	}
}

func TestStats_ProjectOrderIsStable(t *testing.T) {
	h := newHarness(t).login()
	h.stats.out = &models.Stats{
		Sessions:  3,
		Total:     3 * time.Hour,
		ByProject: map[int64]time.Duration{7: time.Hour, 3: time.Hour, 0: time.Hour},
	}
	require.NoError(t, h.app.Stats(context.Background(), nil))

	out := h.out.String()
	none, p3, p7 := strings.Index(out, "(none)"), strings.Index(out, "#3"), strings.Index(out, "#7")
	require.True(t, none >= 0 && p3 >= 0 && p7 >= 0, out)
	assert.Less(t, none, p3)
	assert.Less(t, p3, p7)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0m00s"},
		{-time.Second, "0m00s"},
		{90 * time.Second, "1m30s"},
		{65 * time.Minute, "1h05m"},
		{26*time.Hour + 3*time.Minute, "26h03m"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatDuration(tt.in))
		})
	}
}

func TestReport(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{common.ErrNotAuthenticated, "Please log in first."},
		{fmt.Errorf("wrapped: %w", common.ErrInvalidCredentials), "Invalid email or password."},
		{common.ErrDuplicateEmail, "already registered"},
		{common.ErrSessionAlreadyActive, "already running"},
		{common.ErrInvalidSessionState, "cannot be finished"},
		{common.ErrWrongCredential, "Current password is incorrect."},
		{errors.New("disk on fire"), "Error: disk on fire"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			h := newHarness(t)
			h.app.report(tt.err)
			assert.Contains(t, h.out.String(), tt.want)
		})
	}
}
