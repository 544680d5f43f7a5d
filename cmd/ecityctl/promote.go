package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ecity-api/internal/database"
	"ecity-api/internal/domain"
	"ecity-api/internal/repository"
	"ecity-api/internal/service"
)

var promoteRole string

var promoteCmd = &cobra.Command{
	Use:   "promote <email>",
	Short: "Set a user's role",
	Long: `Set the role of the account registered with <email>.

Examples:
  ecityctl promote officer@city.gov              # grant admin
  ecityctl promote officer@city.gov --role citizen # revoke admin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role := domain.Role(promoteRole)
		if !role.IsValid() {
			return fmt.Errorf("role must be one of: citizen, admin")
		}

		logger := newLogger()
		defer logger.Sync()

		db, err := openDB(logger)
		if err != nil {
			return err
		}
		defer database.Close(db)

		users := service.NewUserService(repository.NewUserRepository(db), logger)
		user, err := users.SetRoleByEmail(cmd.Context(), args[0], role)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) is now %s\n", user.Email, user.ID, user.Role)
		return nil
	},
}

func init() {
	promoteCmd.Flags().StringVar(&promoteRole, "role", string(domain.RoleAdmin), "Role to assign (citizen or admin)")
	rootCmd.AddCommand(promoteCmd)
}
