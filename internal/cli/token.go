package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/artcom-pay/internal/callback"
	"github.com/example/artcom-pay/internal/config"
)

type tokenOut struct {
	Token     string `json:"token"`
	Timestamp int64  `json:"timestamp"`
	Time      string `json:"time"`
	OrderID   string `json:"order_id"`
	Source    string `json:"source"`
	Checksum  string `json:"checksum"`
	Valid     bool   `json:"valid"`
}

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Encode or inspect callback tokens",
	}
	cmd.PersistentFlags().String("secret", "", "Checksum secret (default CALLBACK_SECRET)")

	encode := &cobra.Command{
		Use:   "encode <order_id>",
		Short: "Encode a callback token",
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenEncode,
	}
	encode.Flags().String("source", callback.SourceNextPay, "Source tag: nextpay or nextpay1")
	encode.Flags().Int64("at", 0, "Unix timestamp (default now)")

	decode := &cobra.Command{
		Use:   "decode <token>",
		Short: "Decode a callback token and verify its checksum",
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenDecode,
	}

	cmd.AddCommand(encode, decode)
	return cmd
}

func codecFor(cmd *cobra.Command) (*callback.Codec, error) {
	secret, _ := cmd.Flags().GetString("secret")
	if secret == "" {
		cb, err := config.LoadCallback()
		if err != nil {
			return nil, err
		}
		secret = cb.Secret
	}
	return callback.NewCodec(secret), nil
}

func runTokenEncode(cmd *cobra.Command, args []string) error {
	source, _ := cmd.Flags().GetString("source")
	at, _ := cmd.Flags().GetInt64("at")
	if source != callback.SourceNextPay && source != callback.SourceNextPayTest {
		return fmt.Errorf("unknown source %q", source)
	}

	codec, err := codecFor(cmd)
	if err != nil {
		return err
	}
	if at == 0 {
		at = time.Now().Unix()
	}
	return describe(cmd, codec, codec.EncodeAt(args[0], source, at))
}

func runTokenDecode(cmd *cobra.Command, args []string) error {
	codec, err := codecFor(cmd)
	if err != nil {
		return err
	}
	return describe(cmd, codec, args[0])
}

func describe(cmd *cobra.Command, codec *callback.Codec, token string) error {
	tok, err := callback.Parse(token)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), tokenOut{
		Token:     token,
		Timestamp: tok.Timestamp,
		Time:      time.Unix(tok.Timestamp, 0).UTC().Format(time.RFC3339),
		OrderID:   tok.OrderID,
		Source:    tok.Source,
		Checksum:  tok.Checksum,
		Valid:     codec.Verify(tok),
	})
}
