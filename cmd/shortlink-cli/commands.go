package main

import (
	"fmt"

	"shortlink/internal/data"
	"shortlink/internal/service"

	"github.com/spf13/cobra"
)

func newCreateCmd(opts *rootOptions) *cobra.Command {
	var alias string

	cmd := &cobra.Command{
		Use:   "create <url>",
		Short: "Create a short link for a URL",
		Example: `  shortlink-cli create https://example.com/docs
  shortlink-cli create https://example.com/docs --alias docs`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := opts.newMappingService()
			if err != nil {
				return err
			}
			defer cleanup()

			reply, err := svc.CreateMapping(cmd.Context(), &service.CreateMappingRequest{
				FullURL:     args[0],
				CustomAlias: alias,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), reply)
		},
	}
	cmd.Flags().StringVar(&alias, "alias", "", "custom alias, generated when empty")
	return cmd
}

func newGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <alias>",
		Short: "Show the mapping for an alias",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := opts.newMappingService()
			if err != nil {
				return err
			}
			defer cleanup()

			reply, err := svc.GetMapping(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), reply)
		},
	}
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <alias>",
		Short: "Delete the mapping for an alias",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := opts.newMappingService()
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.DeleteMapping(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return err
		},
	}
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every mapping, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := opts.newMappingService()
			if err != nil {
				return err
			}
			defer cleanup()

			replies, err := svc.ListMappings(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), replies)
		},
	}
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bc, _, err := opts.loadConfig()
			if err != nil {
				return err
			}
			drv, err := data.OpenDriver(bc.Data.Database)
			if err != nil {
				return err
			}
			defer drv.Close()

			if err := data.Migrate(cmd.Context(), drv); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "database schema is up to date")
			return err
		},
	}
}
