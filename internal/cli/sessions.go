package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// now is a test seam for elapsed-time output.
var now = time.Now

const timeLayout = "2006-01-02 15:04"

func (a *App) Active(ctx context.Context, _ []string) error {
	s, err := a.sessions.Active(ctx)
	if err != nil {
		return err
	}
	if s == nil {
		a.println("No active session.")
		return nil
	}
	a.printf("Session %d running since %s (%s)%s\n",
		s.ID, s.StartTime.Local().Format(timeLayout), formatDuration(s.Elapsed(now())), projectSuffix(s.ProjectID))
	return nil
}

func (a *App) Start(ctx context.Context, args []string) error {
	var projectID *int64
	if len(args) > 0 {
		id, ok := a.idArg(args[:1], "start [project-id]")
		if !ok {
			return nil
		}
		projectID = &id
	}

	s, err := a.sessions.Start(ctx, projectID)
	if err != nil {
		return err
	}
	a.printf("Started session %d at %s%s\n", s.ID, s.StartTime.Local().Format(timeLayout), projectSuffix(s.ProjectID))
	return nil
}

// Stop finishes the running session after asking for description and tags.
func (a *App) Stop(ctx context.Context, _ []string) error {
	s, err := a.sessions.Active(ctx)
	if err != nil {
		return err
	}
	if s == nil {
		a.println("No active session.")
		return nil
	}

	desc, err := GetSimpleText(a.reader, "What did you work on?", a.out)
	if err != nil {
		return err
	}
	tags, err := GetList(a.reader, "Tags (comma separated)", a.out)
	if err != nil {
		return err
	}

	if err := a.sessions.Finalize(ctx, s.ID, desc, tags); err != nil {
		return err
	}
	a.printf("Session %d finished after %s\n", s.ID, formatDuration(s.Elapsed(now())))
	return nil
}

func (a *App) Cancel(ctx context.Context, _ []string) error {
	if err := a.sessions.Cancel(ctx); err != nil {
		return err
	}
	a.println("Running session cancelled.")
	return nil
}

func (a *App) History(ctx context.Context, _ []string) error {
	list, err := a.sessions.ListFinished(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("No finished sessions.")
		return nil
	}
	for _, s := range list {
		desc := ""
		if s.Description != nil {
			desc = *s.Description
		}
		line := fmt.Sprintf("%4d  %s  %8s  %s", s.ID, s.StartTime.Local().Format(timeLayout), formatDuration(s.Duration()), desc)
		if len(s.Tags) > 0 {
			line += "  [" + strings.Join(s.Tags, ", ") + "]"
		}
		a.println(strings.TrimRight(line, " ") + projectSuffix(s.ProjectID))
	}
	return nil
}

func (a *App) Stats(ctx context.Context, args []string) error {
	days := 7
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 0 {
			a.println("Usage: stats [days]  (0 = all time)")
			return nil
		}
		days = d
	}

	st, err := a.stats.Summary(ctx, days)
	if err != nil {
		return err
	}

	if days == 0 {
		a.printf("All time: %s in %d sessions\n", formatDuration(st.Total), st.Sessions)
	} else {
		a.printf("Last %d days: %s in %d sessions\n", days, formatDuration(st.Total), st.Sessions)
	}

	if len(st.ByTag) > 0 {
		a.println("By tag:")
		for _, tag := range sortedKeys(st.ByTag) {
			a.printf("  %-20s %s\n", tag, formatDuration(st.ByTag[tag]))
		}
	}
	if len(st.ByProject) > 0 {
		a.println("By project:")
		for _, id := range sortedProjectIDs(st.ByProject) {
			label := "(none)"
			if id != 0 {
				label = fmt.Sprintf("#%d", id)
			}
			a.printf("  %-20s %s\n", label, formatDuration(st.ByProject[id]))
		}
	}
	return nil
}

// sortedKeys orders tags by time spent, then by name.
func sortedKeys(m map[string]time.Duration) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if m[keys[i]] != m[keys[j]] {
			return m[keys[i]] > m[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

// sortedProjectIDs orders projects by time spent, then by id.
func sortedProjectIDs(m map[int64]time.Duration) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if m[ids[i]] != m[ids[j]] {
			return m[ids[i]] > m[ids[j]]
		}
		return ids[i] < ids[j]
	})
	return ids
}

func projectSuffix(id *int64) string {
	if id == nil {
		return ""
	}
	return fmt.Sprintf(" (project #%d)", *id)
}

// formatDuration renders d as "1h05m" or "12m30s".
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
