package main

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbukum/storefront/httpclient"
)

// passwordEnv is read when --password is not given.
const passwordEnv = "STOREFRONT_PASSWORD"

func newAuthCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign in, register or sign out",
	}

	var email, password string
	credentials := func(cmd *cobra.Command) {
		cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
		cmd.Flags().StringVarP(&password, "password", "p", "", "account password (or $"+passwordEnv+")")
		_ = cmd.MarkFlagRequired("email")
	}
	resolvePassword := func() string {
		if password != "" {
			return password
		}
		return os.Getenv(passwordEnv)
	}

	login := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Login(cmd.Context(), email, resolvePassword()); err != nil {
				return err
			}
			return c.showSession()
		},
	}
	credentials(login)

	register := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Register(cmd.Context(), email, resolvePassword()); err != nil {
				return err
			}
			return c.showSession()
		},
	}
	credentials(register)

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Forget the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Logout(cmd.Context()); err != nil {
				return err
			}
			c.out.success("Signed out.")
			return nil
		},
	}

	cmd.AddCommand(login, register, logout)
	return cmd
}

func (c *cli) showSession() error {
	s := c.app.Auth.Get()
	if s.User == nil {
		return errors.New("no user in session")
	}
	return c.out.show(s.User, func() {
		c.out.success("Signed in as " + s.User.Email)
	})
}

type session struct {
	Authenticated bool                    `json:"authenticated" yaml:"authenticated"`
	Claims        *httpclient.TokenClaims `json:"claims,omitempty" yaml:"claims,omitempty"`
	Expired       bool                    `json:"expired" yaml:"expired"`
}

func newWhoamiCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			token := c.app.Auth.Token()
			if token == "" {
				return c.out.show(session{}, func() { c.out.note("Not signed in.") })
			}
			claims, err := httpclient.ParseTokenClaims(token)
			if err != nil {
				return err
			}
			s := session{Authenticated: true, Claims: &claims, Expired: claims.Expired(time.Now())}
			return c.out.show(s, func() {
				exp := "never"
				if !claims.ExpiresAt.IsZero() {
					exp = claims.ExpiresAt.Local().Format(time.RFC1123)
				}
				if s.Expired {
					exp = c.out.st.danger.Render(exp + " (expired)")
				}
				c.out.table([]string{"Subject", "Email", "Expires"}, [][]string{{claims.Subject, claims.Email, exp}})
			})
		},
	}
}
