package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"tabloide-mp/app/middleware"
	"tabloide-mp/authz"
)

var (
	tokenUser     int64
	tokenRole     string
	tokenCompany  int64
	tokenCustomer int64
	tokenTTL      time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an API token signed with JWT_SECRET",
	RunE: func(cmd *cobra.Command, args []string) error {
		actor := &authz.Actor{
			UserID:     tokenUser,
			Role:       authz.Role(tokenRole),
			CompanyID:  tokenCompany,
			CustomerID: tokenCustomer,
		}
		token, err := middleware.NewAuthenticator(os.Getenv("JWT_SECRET")).IssueToken(actor, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().Int64Var(&tokenUser, "user", 1, "User id (sub claim)")
	tokenCmd.Flags().StringVar(&tokenRole, "role", string(authz.RoleAdmin), "Role: admin, empresa or cliente")
	tokenCmd.Flags().Int64Var(&tokenCompany, "company", 0, "Company id for the empresa role")
	tokenCmd.Flags().Int64Var(&tokenCustomer, "customer", 0, "Customer id for the cliente role")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")
}
