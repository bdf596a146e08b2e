package main

import (
	"github.com/spf13/cobra"
)

var (
	username string
	password string
)

var signInCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in and store the access token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), "signin", app.handlers.Session.SignIn(cmd.Context(), app.sess, username, password))
	},
}

var signUpCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	Long:  `Create an account. It does not sign in; run signin afterwards.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), "signup", app.handlers.Session.SignUp(cmd.Context(), username, password))
	},
}

var signOutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Forget the stored access token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), "signout", app.handlers.Session.SignOut(cmd.Context(), app.sess))
	},
}

var whoAmICmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show who the stored token belongs to",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), "whoami", app.handlers.Session.WhoAmI(cmd.Context(), app.sess))
	},
}

func init() {
	for _, c := range []*cobra.Command{signInCmd, signUpCmd} {
		c.Flags().StringVarP(&username, "username", "u", "", "username")
		c.Flags().StringVarP(&password, "password", "p", "", "password")
		_ = c.MarkFlagRequired("username")
		_ = c.MarkFlagRequired("password")
	}
}
