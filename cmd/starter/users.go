// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naranyala/webui-starter/internal/database"
	"github.com/naranyala/webui-starter/internal/handlers"
	apperr "github.com/naranyala/webui-starter/pkg/errors"
)

func newUsersCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users in the store",
	}
	cmd.PersistentFlags().Bool("json", false, "print the handler response envelope as JSON")

	cmd.AddCommand(
		newUsersListCmd(c),
		newUsersGetCmd(c),
		newUsersCreateCmd(c),
		newUsersUpdateCmd(c),
		newUsersDeleteCmd(c),
	)
	return cmd
}

// withHandlers wires the app, runs fn and prints its response.
func (c *cli) withHandlers(cmd *cobra.Command, fn func(*handlers.Handlers) handlers.Response, render func(handlers.Response) string) error {
	app, err := c.openApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	resp := fn(app.Handlers)
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		raw, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return apperr.FromSerialization(err)
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(raw)); err != nil {
			return err
		}
		return resp.Err()
	}

	if err := resp.Err(); err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), render(resp))
	return err
}

func newUsersListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withHandlers(cmd,
				func(h *handlers.Handlers) handlers.Response { return h.GetUsers() },
				func(r handlers.Response) string {
					users, _ := r.Data.([]database.User)
					if len(users) == 0 {
						return dimStyle.Render("no users")
					}
					return usersTable(users)
				})
		},
	}
}

func newUsersGetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.withHandlers(cmd,
				func(h *handlers.Handlers) handlers.Response { return h.GetUser(id) },
				func(r handlers.Response) string {
					u, _ := r.Data.(*database.User)
					return usersTable([]database.User{*u})
				})
		},
	}
}

func newUsersCreateCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create NAME EMAIL",
		Short: "Create a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			role, _ := cmd.Flags().GetString("role")
			status, _ := cmd.Flags().GetString("status")
			in := handlers.CreateUserInput{Name: args[0], Email: args[1], Role: role, Status: status}
			return c.withHandlers(cmd,
				func(h *handlers.Handlers) handlers.Response { return h.CreateUser(in) },
				func(r handlers.Response) string {
					return successStyle.Render(fmt.Sprintf("created user %v", r.Data))
				})
		},
	}
	cmd.Flags().String("role", handlers.DefaultRole, "user role")
	cmd.Flags().String("status", handlers.DefaultStatus, "user status")
	return cmd
}

func newUsersUpdateCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update selected fields of a user",
		Long:  "Update the fields given as flags. Fields without a flag keep their stored value.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			in := handlers.UpdateUserInput{
				Name:   changed(cmd, "name"),
				Email:  changed(cmd, "email"),
				Role:   changed(cmd, "role"),
				Status: changed(cmd, "status"),
			}
			return c.withHandlers(cmd,
				func(h *handlers.Handlers) handlers.Response { return h.UpdateUser(id, in) },
				func(r handlers.Response) string { return rowsMessage("updated", id, r) })
		},
	}
	cmd.Flags().String("name", "", "new name")
	cmd.Flags().String("email", "", "new email")
	cmd.Flags().String("role", "", "new role")
	cmd.Flags().String("status", "", "new status")
	return cmd
}

func newUsersDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.withHandlers(cmd,
				func(h *handlers.Handlers) handlers.Response { return h.DeleteUser(id) },
				func(r handlers.Response) string { return rowsMessage("deleted", id, r) })
		},
	}
}

func changed(cmd *cobra.Command, flag string) *string {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	v, _ := cmd.Flags().GetString(flag)
	return &v
}

func rowsMessage(verb string, id int64, r handlers.Response) string {
	if n, _ := r.Data.(int64); n == 0 {
		return dimStyle.Render(fmt.Sprintf("no user with id %d", id))
	}
	return successStyle.Render(fmt.Sprintf("%s user %d", verb, id))
}
