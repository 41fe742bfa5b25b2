package cli

import (
	"context"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) promptCredentials() (string, string, error) {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return "", "", err
	}
	password, err := getPassword(a.reader, os.Stdout)
	if err != nil {
		return "", "", err
	}
	return username, password, nil
}

// Register prompts for a username and password and creates the account,
// which is signed in right away.
func (a *App) Register(ctx context.Context) error {
	username, password, err := a.promptCredentials()
	if err != nil {
		return err
	}

	u, err := a.session.Register(ctx, username, password)
	if err != nil {
		a.report(ctx, err)
		return err
	}

	printlnFn("Welcome, " + u.Username + "!")
	return nil
}

// Login prompts for credentials and signs the account in.
func (a *App) Login(ctx context.Context) error {
	username, password, err := a.promptCredentials()
	if err != nil {
		return err
	}

	u, err := a.session.Login(ctx, username, password)
	if err != nil {
		a.report(ctx, err)
		return err
	}

	printlnFn("Welcome back, " + u.Username + "!")
	return nil
}

// Logout ends the session. Favorites stay stored for the next login.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("You are not logged in")
		return nil
	}
	if err := a.session.Logout(ctx); err != nil {
		a.report(ctx, err)
		return err
	}
	printlnFn("Logged out")
	return nil
}
