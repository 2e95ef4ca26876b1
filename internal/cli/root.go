// Package cli is the artcom-pay command line: the server plus support
// tools for reproducing identities and inspecting callback tokens.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "artcom-pay",
		Short:         "ArtCom payment functions",
		Long:          "artcom-pay serves the Midtrans and DOKU payment functions and ships support tools for them.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newIdentityCmd())
	root.AddCommand(newTokenCmd())
	root.AddCommand(newSampleCmd())
	return root
}

// Execute runs the root command
func Execute(version string) error {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
