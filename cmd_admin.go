package main

import (
	"fmt"

	"github.com/WilkerGw/LP-OTICA/services"
	"github.com/WilkerGw/LP-OTICA/utils"

	"github.com/spf13/cobra"
)

var hashPasswordTOTP string

// hashPasswordCmd prints the values the admin environment variables expect.
var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
	Long: `Print a bcrypt hash for ADMIN_PASSWORD_HASH.

With --totp <email>, also generate an ADMIN_TOTP_SECRET and the otpauth://
URL to register in an authenticator app.`,
	Args: cobra.ExactArgs(1),
	RunE: runHashPassword,
}

func init() {
	hashPasswordCmd.Flags().StringVar(&hashPasswordTOTP, "totp", "", "generate a TOTP secret for this account")
}

func runHashPassword(cmd *cobra.Command, args []string) error {
	if len(args[0]) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	hash, err := services.HashPassword(args[0])
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ADMIN_PASSWORD_HASH=%s\n", hash)

	if hashPasswordTOTP != "" {
		secret, url, err := utils.GenerateTOTPSecret(hashPasswordTOTP)
		if err != nil {
			return fmt.Errorf("failed to generate TOTP secret: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ADMIN_TOTP_SECRET=%s\n", secret)
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", url)
	}
	return nil
}
