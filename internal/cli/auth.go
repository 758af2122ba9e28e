package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/trackly/internal/common"
	"github.com/dmitrijs2005/trackly/internal/models"
)

func (a *App) readCredentials() (string, []byte, error) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := GetPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

func (a *App) Register(ctx context.Context, _ []string) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.auth.Register(ctx, email, string(password))
	if err != nil {
		return err
	}
	a.printf("Registered %s. You can log in now.\n", u.Email)
	return nil
}

func (a *App) Login(ctx context.Context, _ []string) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.auth.Login(ctx, email, string(password))
	if err != nil {
		return err
	}
	a.printf("Welcome, %s!\n", displayName(u))
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.println("Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	u, err := a.auth.CurrentIdentity(ctx)
	if err != nil {
		return err
	}
	a.printf("%s <%s>\n", displayName(u), u.Email)
	if u.AvatarURL != nil {
		a.printf("avatar: %s\n", *u.AvatarURL)
	}
	return nil
}

// Profile asks for each field; an empty answer keeps the current value.
func (a *App) Profile(ctx context.Context, _ []string) error {
	u, err := a.auth.CurrentIdentity(ctx)
	if err != nil {
		return err
	}

	var upd models.ProfileUpdate

	name, err := GetSimpleText(a.reader, fmt.Sprintf("Display name [%s]", displayName(u)), a.out)
	if err != nil {
		return err
	}
	if name != "" {
		upd.DisplayName = &name
	}

	email, err := GetSimpleText(a.reader, fmt.Sprintf("Email [%s]", u.Email), a.out)
	if err != nil {
		return err
	}
	if email != "" {
		upd.Email = &email
	}

	newPw, err := GetPassword(a.reader, "New password (empty to keep)", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPw)
	if len(newPw) > 0 {
		curPw, err := GetPassword(a.reader, "Current password", a.out)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(curPw)
		np, cp := string(newPw), string(curPw)
		upd.Password = &np
		upd.CurrentPassword = &cp
	}

	u, err = a.auth.UpdateProfile(ctx, upd)
	if err != nil {
		return err
	}
	a.printf("Profile saved: %s <%s>\n", displayName(u), u.Email)
	return nil
}

func (a *App) Avatar(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.println("Usage: avatar <path>")
		return nil
	}
	data, err := readFile(args[0])
	if err != nil {
		return err
	}
	loc, err := a.auth.UploadAvatar(ctx, data)
	if err != nil {
		return err
	}
	a.printf("Avatar saved: %s\n", loc)
	return nil
}

func displayName(u *models.PublicUser) string {
	if u.DisplayName != nil && *u.DisplayName != "" {
		return *u.DisplayName
	}
	return u.Email
}
