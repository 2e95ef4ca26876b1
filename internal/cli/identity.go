package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/artcom-pay/internal/identity"
)

type identityOut struct {
	Name     string `json:"name"`
	Fallback bool   `json:"fallback,omitempty"`
	identity.Customer
}

func newIdentityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identity [name...]",
		Short: "Print the customer identity synthesized for a name and card",
		Long: `Print the customer identity the payment functions synthesize for a buyer.

With no name, the fallback display name derived from --order-id and --amount
is used, as it is for requests without custom_name.`,
		RunE: runIdentity,
	}
	cmd.Flags().String("card", "", "Card number used as seed (formatting ignored)")
	cmd.Flags().String("order-id", "", "Order id for the fallback name")
	cmd.Flags().String("amount", "", "Amount for the fallback name")
	return cmd
}

func runIdentity(cmd *cobra.Command, args []string) error {
	card, _ := cmd.Flags().GetString("card")
	orderID, _ := cmd.Flags().GetString("order-id")
	amount, _ := cmd.Flags().GetString("amount")

	out := identityOut{Name: identity.Trim(strings.Join(args, " "))}
	if out.Name == "" {
		out.Name = identity.FallbackName(orderID, amount)
		out.Fallback = true
	}
	out.Customer = identity.Generate(out.Name, card)
	return printJSON(cmd.OutOrStdout(), out)
}
