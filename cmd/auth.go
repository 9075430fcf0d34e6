package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/bnema/brevio-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *app) *cobra.Command {
	var identity string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with a username or email",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return authError(app.auth.Login(cmd.Context(), identity, password))
		},
	}

	cmd.Flags().StringVar(&identity, "identity", "", "Username or email")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	_ = cmd.MarkFlagRequired("identity")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newRegisterCmd(app *app) *cobra.Command {
	var username string
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Long:  "register creates an account. Usernames are 6 to 10 letters, digits, dots, dashes or underscores; passwords need at least 8 characters with an upper case letter, a lower case letter, a digit and a special character.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return authError(app.auth.Register(cmd.Context(), username, email, password))
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.session.Logout(cmd.Context())
			if err := app.saveWorkspace(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return err
		},
	}
}

func newSessionCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Show whether the stored session is still valid",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if !app.session.IsLoggedIn() {
				_, err := fmt.Fprintln(out, "logged out")
				return err
			}

			if expiresAt, ok := app.session.Session().ExpiresAt(); ok {
				_, err := fmt.Fprintf(out, "logged in (expires %s)\n", expiresAt.Local().Format(time.RFC3339))
				return err
			}
			_, err := fmt.Fprintln(out, "logged in")
			return err
		},
	}
}

// authError marks failures the auth service already notified. Validation
// errors are local and still need printing.
func authError(err error) error {
	if err == nil {
		return nil
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return err
	}
	return reported(err)
}
