package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"estate_listing_v1/internal/model"
	"estate_listing_v1/pkg/client"
)

func newVerifyCmd(a *app) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "verify agency|agent|project <id>",
		Short: "Change the verification status of a listing",
		Long: `Change the verification status of a listing.

Reviewer only: --token (or API_TOKEN) must carry a session with role "admin".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := client.ParseKind(args[0])
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid id %q", args[1])
			}
			st, err := model.VerificationStatuses.Parse(status)
			if err != nil {
				return err
			}
			if err := a.client.Verify(cmd.Context(), kind, id, string(st)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d marked %s\n", kind, id, st)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", string(model.VerificationVerified), "PENDING or VERIFIED")
	return cmd
}
