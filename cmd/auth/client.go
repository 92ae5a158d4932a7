package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/snehalbaghel/badgr-server/internal/auth/app"
	"github.com/snehalbaghel/badgr-server/internal/auth/service"
	"github.com/snehalbaghel/badgr-server/internal/auth/store"
	"github.com/spf13/cobra"
)

func newClientCmd(cfg *app.Config) *cobra.Command {
	c := cobra.Command{
		Use:   "client",
		Short: "Manage OAuth2 clients",
		Args:  cobra.NoArgs,
	}
	c.AddCommand(
		newClientCreateCmd(cfg),
		newClientListCmd(cfg),
		newClientRotateCmd(cfg),
		newClientDeleteCmd(cfg),
	)
	return &c
}

func newClientCreateCmd(cfg *app.Config) *cobra.Command {
	var spec service.ClientSpec

	c := cobra.Command{
		Use:   "create <name>",
		Short: "Create a client; the secret of a confidential client is printed once",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec.Name = args[0]
			return withStore(cmd.Context(), *cfg, func(ctx context.Context, st store.Store) error {
				svc := &service.ClientService{Store: st}
				id, secret, err := svc.CreateClient(ctx, spec)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "client_id=%s\n", id)
				if secret != "" {
					fmt.Fprintf(out, "client_secret=%s\n", secret)
				}
				return nil
			})
		},
	}

	f := c.Flags()
	f.StringVar(&spec.ID, "id", "", "client id (generated when empty)")
	f.BoolVar(&spec.Confidential, "confidential", false, "issue a client secret")
	f.StringSliceVar(&spec.GrantTypes, "grant", []string{"authorization_code", "refresh_token"}, "allowed grant types")
	f.StringSliceVar(&spec.RedirectURIs, "redirect-uri", nil, "registered redirect URIs")
	f.StringSliceVar(&spec.Scopes, "scope", nil, "allowed scopes")
	f.StringVar(&spec.ClientURI, "client-uri", "", "application homepage")
	f.BoolVar(&spec.SkipAuthorization, "skip-authorization", false, "skip the consent screen")
	f.BoolVar(&spec.TrustEmailVerification, "trust-email-verification", false, "treat users of this client as email-verified")
	return &c
}

func newClientListCmd(cfg *app.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd.Context(), *cfg, func(ctx context.Context, st store.Store) error {
				clients, err := (&service.ClientService{Store: st}).ListClients(ctx)
				if err != nil {
					return err
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tTYPE\tGRANTS\tSCOPES")
				for _, cl := range clients {
					kind := "confidential"
					if cl.IsPublic() {
						kind = "public"
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
						cl.ID, cl.Name, kind,
						strings.Join(cl.GrantTypes, ","),
						strings.Join(cl.Scopes, " "),
					)
				}
				return tw.Flush()
			})
		},
	}
}

func newClientRotateCmd(cfg *app.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "rotate-secret <client-id>",
		Short: "Issue a new secret for a confidential client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), *cfg, func(ctx context.Context, st store.Store) error {
				secret, err := (&service.ClientService{Store: st}).RotateSecret(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "client_secret=%s\n", secret)
				return nil
			})
		},
	}
}

func newClientDeleteCmd(cfg *app.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <client-id>",
		Short: "Delete a client and every token issued to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), *cfg, func(ctx context.Context, st store.Store) error {
				return (&service.ClientService{Store: st}).DeleteClient(ctx, args[0])
			})
		},
	}
}
