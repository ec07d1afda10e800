package cli

import (
	"errors"

	"github.com/spf13/cobra"

	apperrors "fig-tracker/internal/errors"
	"fig-tracker/internal/logging"
	"fig-tracker/internal/models"
	"fig-tracker/internal/session"
)

// addAuthCommands adds login and session commands.
func addAuthCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newLoginCmd(app))
	rootCmd.AddCommand(newLogoutCmd(app))
	rootCmd.AddCommand(newWhoamiCmd(app))
}

func newLoginCmd(app *App) *cobra.Command {
	var admin bool

	cmd := &cobra.Command{
		Use:   "login <user> <password>",
		Short: "Sign in as an operator or the admin",
		Long: `Sign in with operator credentials, or with the admin pair using --admin.
Credentials are case-insensitive.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			login, password := args[0], args[1]

			var err error
			if admin {
				err = app.Session.LoginAdmin(login, password)
			} else {
				err = app.Session.Login(cmd.Context(), login, password)
			}
			logging.LogLogin(app.Logger, models.NormalizeCredential(login), admin, err == nil)

			if err != nil {
				if errors.Is(err, apperrors.ErrInvalidCredentials) {
					output.Error("Usuário ou senha inválidos")
					return err
				}
				output.Error("Login failed: %v", err)
				return err
			}

			app.saveSession()
			if output.IsJSON() {
				return output.JSON(map[string]string{
					"state": string(app.Session.State()),
					"login": app.Session.CurrentLogin(),
				})
			}
			if admin {
				output.Success("✓ Admin panel unlocked")
			} else {
				output.Success("✓ Logged in as %s", app.Session.CurrentLogin())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&admin, "admin", false, "sign in to the admin panel")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and return to the login screen",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			app.Session.Logout()
			app.saveSession()
			if output.IsJSON() {
				return output.JSON(map[string]string{"state": string(session.StateLogin)})
			}
			output.Success("✓ Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the active session",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			state := app.Session.State()
			if output.IsJSON() {
				return output.JSON(map[string]string{
					"state": string(state),
					"login": app.Session.CurrentLogin(),
				})
			}
			switch state {
			case session.StateOperator:
				output.Printf("Operator: %s\n", app.Session.CurrentLogin())
			case session.StateAdmin:
				output.Printf("Admin: %s\n", app.Session.CurrentLogin())
			default:
				output.Println("Not logged in")
			}
			return nil
		},
	}
}
