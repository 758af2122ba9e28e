package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
)

// errExit ends the loop.
var errExit = errors.New("exit")

type command func(ctx context.Context, args []string) error

func (a *App) commands() map[string]command {
	return map[string]command{
		"help":         a.help,
		"register":     a.Register,
		"login":        a.Login,
		"logout":       a.Logout,
		"whoami":       a.WhoAmI,
		"profile":      a.Profile,
		"avatar":       a.Avatar,
		"projects":     a.ListProjects,
		"project-add":  a.AddProject,
		"project-edit": a.EditProject,
		"project-rm":   a.RemoveProject,
		"active":       a.Active,
		"start":        a.Start,
		"stop":         a.Stop,
		"cancel":       a.Cancel,
		"history":      a.History,
		"stats":        a.Stats,
		"exit":         func(context.Context, []string) error { return errExit },
		"quit":         func(context.Context, []string) error { return errExit },
	}
}

// runREPL reads commands from reader until EOF or exit. Command errors are
// reported and the loop goes on.
func runREPL(ctx context.Context, a *App, reader *bufio.Reader) {
	cmds := a.commands()
	for {
		if ctx.Err() != nil {
			return
		}
		a.printf("trackly> ")

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			a.println()
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd, ok := cmds[parts[0]]
		if !ok {
			a.println("Unknown command:", parts[0])
			continue
		}

		if err := cmd(ctx, parts[1:]); err != nil {
			if errors.Is(err, errExit) {
				a.println("Bye!")
				return
			}
			a.report(err)
		}
	}
}

func (a *App) help(ctx context.Context, _ []string) error {
	if a.isLoggedIn(ctx) {
		a.println("Commands: whoami, profile, avatar <path>, projects, project-add, project-edit <id>, project-rm <id>,")
		a.println("          active, start [project-id], stop, cancel, history, stats [days], logout, exit")
	} else {
		a.println("Commands: register, login, exit")
	}
	return nil
}
