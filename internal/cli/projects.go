package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/trackly/internal/models"
)

func (a *App) ListProjects(ctx context.Context, _ []string) error {
	list, err := a.projects.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("No projects yet. Use project-add.")
		return nil
	}
	for _, p := range list {
		a.printf("%4d  %-8s %s\n", p.ID, p.Color, p.Name)
	}
	return nil
}

func (a *App) AddProject(ctx context.Context, _ []string) error {
	name, err := GetSimpleText(a.reader, "Project name", a.out)
	if err != nil {
		return err
	}
	color, err := GetSimpleText(a.reader, "Color (empty for default)", a.out)
	if err != nil {
		return err
	}
	p, err := a.projects.Create(ctx, name, color)
	if err != nil {
		return err
	}
	a.printf("Created project %d: %s\n", p.ID, p.Name)
	return nil
}

func (a *App) EditProject(ctx context.Context, args []string) error {
	id, ok := a.idArg(args, "project-edit <id>")
	if !ok {
		return nil
	}

	var upd models.ProjectUpdate
	name, err := GetSimpleText(a.reader, "New name (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if name != "" {
		upd.Name = &name
	}
	color, err := GetSimpleText(a.reader, "New color (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if color != "" {
		upd.Color = &color
	}

	p, err := a.projects.Update(ctx, id, upd)
	if err != nil {
		return err
	}
	a.printf("Project %d: %s %s\n", p.ID, p.Name, p.Color)
	return nil
}

func (a *App) RemoveProject(ctx context.Context, args []string) error {
	id, ok := a.idArg(args, "project-rm <id>")
	if !ok {
		return nil
	}
	if err := a.projects.Delete(ctx, id); err != nil {
		return err
	}
	a.printf("Deleted project %d\n", id)
	return nil
}

// idArg parses the single numeric argument, printing usage when missing.
func (a *App) idArg(args []string, usage string) (int64, bool) {
	if len(args) != 1 {
		a.println("Usage:", usage)
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		a.println(fmt.Sprintf("Invalid id %q", args[0]))
		return 0, false
	}
	return id, true
}
