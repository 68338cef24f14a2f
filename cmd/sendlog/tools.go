package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/totegamma/sendlog"
	"github.com/totegamma/sendlog/client"
	"github.com/totegamma/sendlog/internal/service"
)

func hashPasswordCommand() *cobra.Command {
	var scheme string

	cmd := &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a stored credential for a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hasher, err := service.NewPasswordService(scheme)
			if err != nil {
				return err
			}
			hashed, err := hasher.Hash(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hashed)
			return err
		},
	}
	cmd.Flags().StringVar(&scheme, "scheme", service.SchemeSHA256, "sha256 or bcrypt")
	return cmd
}

func projectsCommand() *cobra.Command {
	var server, username, password string
	var all bool

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Show a climber's open projects from a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				return errors.New("--username or SENDLOG_USERNAME is required")
			}

			ctx := cmd.Context()
			c := client.New(server)

			if password != "" {
				if _, err := c.Login(ctx, username, password); err != nil {
					return err
				}
			} else {
				c.SetUsername(username)
			}

			if all {
				attempts, err := c.SortedHistory(ctx)
				if err != nil {
					return err
				}
				return sendlog.JsonPrint(cmd.OutOrStdout(), attempts)
			}

			projects, err := c.Projects(ctx)
			if err != nil {
				return err
			}
			return sendlog.JsonPrint(cmd.OutOrStdout(), projects)
		},
	}
	cmd.Flags().StringVar(&server, "server", envOr("SENDLOG_SERVER", "http://localhost:8000"), "API base URL")
	cmd.Flags().StringVarP(&username, "username", "u", os.Getenv("SENDLOG_USERNAME"), "climber username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "log in first with this password")
	cmd.Flags().BoolVar(&all, "all", false, "print the full sorted attempt history instead")
	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
