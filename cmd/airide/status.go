package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"airide/internal/screens"
)

func newStatusCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Backend status checks",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List status checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scr := screens.NewStatusScreen(a.api)
			defer open(cmd, scr)()

			checks, err := scr.List()
			if err != nil {
				return err
			}
			for _, c := range checks {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n", c.Timestamp.Local().Format(time.DateTime), c.ID, c.ClientName)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create CLIENT_NAME",
		Short: "Record a status check",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scr := screens.NewStatusScreen(a.api)
			defer open(cmd, scr)()

			scr.ClientName = args[0]
			c, err := scr.Create()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), c)
		},
	})
	return cmd
}

func newPingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the backend answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			msg, err := a.api.Ping(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", a.cfg.BackendLabel(), msg)
			return nil
		},
	}
}
