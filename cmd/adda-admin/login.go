package main

import (
	"errors"
	"fmt"

	"github.com/brokeradda/adda-admin/internal/apierror"
	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/brokeradda/adda-admin/internal/repository"
	"github.com/brokeradda/adda-admin/internal/service"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the admin token",
	Long:  `Sign in to the Broker Adda backend and persist the token to the configured token file.`,
	RunE:  runLogin,
}

var (
	loginEmail    string
	loginPassword string
	logout        bool
)

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Admin email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Admin password")
	loginCmd.Flags().BoolVar(&logout, "logout", false, "Remove the stored token instead")
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}
	if cfg.Session.TokenFile == "" {
		return errors.New("session.token_file must be set to store the token")
	}

	sess := newSession(cfg)
	auth := service.NewAuth(sess, repository.NewAuthRepository(newClient(cfg, sess)))

	if logout {
		auth.Logout(cmd.Context())
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	}

	errs, err := auth.Login(cmd.Context(), models.LoginInput{Email: loginEmail, Password: loginPassword})
	if len(errs) > 0 {
		return fieldErrors(errs)
	}
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in, token stored in %s\n", cfg.Session.TokenFile)
	return nil
}

func fieldErrors(errs []apierror.FieldError) error {
	joined := make([]error, 0, len(errs))
	for _, fe := range errs {
		joined = append(joined, fmt.Errorf("%s: %s", fe.Field, fe.Message))
	}
	return errors.Join(joined...)
}
