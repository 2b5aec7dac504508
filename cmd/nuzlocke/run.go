package main

import "github.com/spf13/cobra"

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Create, list and show runs",
	}
	cmd.AddCommand(newRunCreateCmd(a), newRunListCmd(a), newRunShowCmd(a))
	return cmd
}
