package cli

import (
	"errors"

	"github.com/spf13/cobra"

	apperrors "fig-tracker/internal/errors"
)

// addAdminCommands adds the admin panel commands.
func addAdminCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin panel",
		Long:  "Manage operator accounts. Requires an admin session (login --admin).",
	}

	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage operator accounts",
	}
	userCmd.AddCommand(newUserListCmd(app))
	userCmd.AddCommand(newUserAddCmd(app))
	userCmd.AddCommand(newUserRemoveCmd(app))

	cmd.AddCommand(userCmd)
	rootCmd.AddCommand(cmd)
}

func newUserListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List operator accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Session.RequireAdmin(); err != nil {
				output.Error("Admin session required: figtrack login --admin <user> <password>")
				return err
			}

			users, err := app.Auth.Operators(cmd.Context())
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(users)
			}

			table := NewTable(output, "ID", "Login", "Created", "")
			for _, u := range users {
				tag := ""
				if u.Permanent() {
					tag = output.DimText("permanent")
				}
				table.AddRow(u.ID, u.Login, u.CreatedAt.Format("2006-01-02"), tag)
			}
			table.Render()
			return nil
		},
	}
}

func newUserAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <login> <password>",
		Short: "Create an operator account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Session.RequireAdmin(); err != nil {
				output.Error("Admin session required: figtrack login --admin <user> <password>")
				return err
			}

			user, err := app.Auth.AddOperator(cmd.Context(), args[0], args[1])
			if err != nil {
				if errors.Is(err, apperrors.ErrDuplicateOperator) {
					output.Error("An operator named %s already exists", args[0])
				}
				return err
			}

			if output.IsJSON() {
				return output.JSON(user)
			}
			output.Success("✓ Operator %s created (id %s)", user.Login, user.ID)
			return nil
		},
	}
}

func newUserRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete an operator account",
		Long:  "Delete an operator account by id. The built-in operator cannot be removed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Session.RequireAdmin(); err != nil {
				output.Error("Admin session required: figtrack login --admin <user> <password>")
				return err
			}

			if err := app.Auth.RemoveOperator(cmd.Context(), args[0]); err != nil {
				switch {
				case errors.Is(err, apperrors.ErrPermanentOperator):
					output.Error("The built-in operator cannot be removed")
				case errors.Is(err, apperrors.ErrOperatorNotFound):
					output.Error("No operator with id %s", args[0])
				}
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]string{"removed": args[0]})
			}
			output.Success("✓ Operator %s removed", args[0])
			return nil
		},
	}
}
