package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func newEntryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Add, update and delete run entries",
	}
	cmd.AddCommand(newEntryAddCmd(a), newEntryUpdateCmd(a), newEntryDeleteCmd(a))
	return cmd
}

// partnerFlag converts the --partner value: empty or "none" clears the
// partner.
func partnerFlag(value string) *string {
	if value == "" || strings.EqualFold(value, "none") {
		return nil
	}
	return &value
}
