package cli

import (
	"context"
	"fmt"
)

// Login prompts for credentials and opens a session. A rejected login
// leaves any previous session untouched.
func (a *App) Login(ctx context.Context) {
	username, err := GetSimpleText(a.reader, "username", a.out)
	if err != nil {
		a.feedback.ReportFailure(ctx, err)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		a.feedback.ReportFailure(ctx, err)
		return
	}

	if err := a.sessionSvc.Login(ctx, username, password); err != nil {
		a.feedback.ReportFailure(ctx, err)
		return
	}
	a.feedback.ReportSuccess(ctx, "Logged in as "+username)
}

// Logout destroys the live and persisted session.
func (a *App) Logout(ctx context.Context) {
	a.sessionSvc.Logout(ctx)
	a.feedback.ReportSuccess(ctx, "Logged out")
}

// Whoami prints the signed-in identity from the access-token claims.
func (a *App) Whoami(ctx context.Context) {
	name, claims, err := a.sessionSvc.Whoami()
	if err != nil {
		a.feedback.ReportFailure(ctx, err)
		return
	}
	fmt.Fprintf(a.out, "username: %s\n", name)
	if claims.Subject != "" {
		fmt.Fprintf(a.out, "id: %s\n", claims.Subject)
	}
	if claims.Role != "" {
		fmt.Fprintf(a.out, "role: %s\n", claims.Role)
	}
	if !claims.ExpiresAt.IsZero() {
		fmt.Fprintf(a.out, "token expires: %s\n", claims.ExpiresAt.Format("2006-01-02 15:04:05"))
	}
}
