package cli

import (
	"encoding/json"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/spf13/cobra"

	"github.com/example/artcom-pay/internal/payment"
)

var sampleSources = []string{payment.SourceLegacy, payment.SourceNextPayTest, payment.SourceWix, "shop"}

func newSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write valid initiation requests as JSON lines, for load and replay tests",
		Args:  cobra.NoArgs,
		RunE:  runSample,
	}
	cmd.Flags().IntP("n", "n", 100, "Number of requests")
	cmd.Flags().Uint64("seed", 0, "Seed (0 picks a random one)")
	cmd.Flags().StringP("out", "o", "", "Output file (default stdout)")
	return cmd
}

func runSample(cmd *cobra.Command, _ []string) error {
	n, _ := cmd.Flags().GetInt("n")
	seed, _ := cmd.Flags().GetUint64("seed")
	out, _ := cmd.Flags().GetString("out")

	var w io.Writer = cmd.OutOrStdout()
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, req := range sampleRequests(gofakeit.New(seed), n) {
		if err := enc.Encode(req); err != nil {
			return err
		}
	}
	return nil
}

// sampleRequests builds n requests that pass validation, spread over
// both gateways and every order id family.
func sampleRequests(f *gofakeit.Faker, n int) []*payment.Request {
	reqs := make([]*payment.Request, 0, n)
	for i := 0; i < n; i++ {
		source := f.RandomString(sampleSources)
		req := &payment.Request{
			PaymentGateway: f.RandomString([]string{payment.GatewayMidtrans, payment.GatewayDoku}),
			PaymentSource:  source,
			OrderID:        sampleOrderID(f, source),
			CustomName:     f.Name(),
			CreditCard:     f.CreditCardNumber(nil),
			ItemName:       f.ProductName(),
			TestMode:       source == payment.SourceNextPayTest,
		}
		amount := f.Number(1_000, 5_000_000)
		if f.Bool() {
			req.Amount = strconv.Itoa(amount)
		} else {
			req.Amount = amount
		}
		reqs = append(reqs, req)
	}
	return reqs
}

func sampleOrderID(f *gofakeit.Faker, source string) string {
	switch source {
	case payment.SourceLegacy, payment.SourceNextPayTest:
		return "ARTCOM_" + strings.ToUpper(f.LetterN(11)) + f.DigitN(16)
	case payment.SourceWix:
		return "ARTCOM_" + f.DigitN(10)
	default:
		return "ORDER-" + f.DigitN(6)
	}
}
