package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"estate_listing_v1/internal/view"
	"estate_listing_v1/pkg/client"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list agencies|agents|projects",
		Short: "Render all listings of a kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := client.ParseKind(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			var out string
			switch kind {
			case client.KindAgency:
				out, err = renderList(ctx, a, "Agencies", kind, view.AgencyCard)
			case client.KindAgent:
				out, err = renderList(ctx, a, "Agents", kind, view.AgentCard)
			case client.KindProject:
				out, err = renderList(ctx, a, "Projects", kind, view.ProjectCard)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
}

func renderList[T any](ctx context.Context, a *app, title string, kind client.Kind, card func(T) string) (string, error) {
	v := view.NewListView(title, func(ctx context.Context) ([]T, error) {
		return client.List[T](ctx, a.client, kind)
	}, card, a.log)
	v.Load(ctx)
	if v.State() == view.StateSuccess {
		a.log.Debug("listings loaded", zap.String("kind", string(kind)), zap.Int("count", len(v.Items())))
	}
	return v.Render(), v.Err()
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show agency|agent|project <id>",
		Short: "Render a single listing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := client.ParseKind(args[0])
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid id %q", args[1])
			}
			ctx := cmd.Context()

			var out string
			switch kind {
			case client.KindAgency:
				out, err = renderDetail(ctx, a, "Agency", kind, id, view.AgencyDetail)
			case client.KindAgent:
				out, err = renderDetail(ctx, a, "Agent", kind, id, view.AgentDetail)
			case client.KindProject:
				out, err = renderDetail(ctx, a, "Project", kind, id, view.ProjectDetail)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
}

func renderDetail[T any](ctx context.Context, a *app, title string, kind client.Kind, id int64, render func(T) string) (string, error) {
	v := view.NewDetailView(title, func(ctx context.Context) (*T, error) {
		return client.Get[T](ctx, a.client, kind, id)
	}, render, a.log)
	v.Load(ctx)
	return v.Render(), v.Err()
}
