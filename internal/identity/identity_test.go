package identity

import (
	"regexp"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	phoneRe = regexp.MustCompile(`^\+(90(5\d{2})\d{3}\d{4}|(49|1|44|33|31)\d{3}\d{6})$`)
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._-]{3,15}@(gmail\.com|yahoo\.com|hotmail\.com|outlook\.com|icloud\.com|protonmail\.com|yandex\.com|mail\.ru|live\.com|msn\.com|aol\.com|zoho\.com|tutanota\.com|fastmail\.com|gmx\.com|mail\.com)$`)
)

func TestGenerate_Golden(t *testing.T) {
	tests := []struct {
		name string
		card any
		want Customer
	}{
		{
			name: "John Doe", card: "4111 1111 1111 1111",
			want: Customer{"John", "Doe", "bosque37@hotmail.com", "+905517499356"},
		},
		{
			name: "  JOHN   doe  ", card: "4111-1111-1111-1111",
			want: Customer{"John", "Doe", "gxl06gjb@gmail.com", "+905543079240"},
		},
		{
			name: "Siti Nurhaliza", card: nil,
			want: Customer{"Siti", "Nurhaliza", "loha01@yahoo.com", "+905423031403"},
		},
		{
			name: "Budi", card: float64(5555555555554444),
			want: Customer{"Budi", "Artcom", "budi2010@gmail.com", "+905463716831"},
		},
		{
			name: "Ayşe Yılmaz", card: "4000000000000002",
			want: Customer{"Aye", "Ylmaz", "aye2011@gmail.com", "+905531773149"},
		},
		{
			name: "!!!", card: "",
			want: Customer{"Customer", "Artcom", "cusoceano34@gmail.com", "+905549251748"},
		},
		{
			name: "Maria de la Cruz", card: "378282246310005",
			want: Customer{"Maria", "Delacruz", "gatesafaia65@icloud.com", "+905543664777"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.name, tt.card))
		})
	}
}

func TestGenerate_BlankNameReturnsDefault(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n", " "} {
		assert.Equal(t, Default, Generate(name, "4111111111111111"), "name %q", name)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	f := gofakeit.New(42)
	for i := 0; i < 200; i++ {
		name := f.Name()
		card := f.CreditCardNumber(nil)

		a := Generate(name, card)
		b := Generate(name, card)
		require.Equal(t, a, b)
	}
}

func TestGenerate_CaseAndOuterWhitespaceStable(t *testing.T) {
	f := gofakeit.New(7)
	for i := 0; i < 100; i++ {
		name := f.FirstName() + " " + f.LastName()
		card := f.CreditCardNumber(nil)

		want := Generate(name, card)
		assert.Equal(t, want, Generate(strings.ToUpper(name), card))
		assert.Equal(t, want, Generate("  "+strings.ToLower(name)+"\t", card))
	}
}

func TestGenerate_CardFormattingIgnored(t *testing.T) {
	assert.Equal(t,
		Generate("Jane Roe", "4111111111111111"),
		Generate("Jane Roe", "4111 1111-1111 1111"),
	)
}

func TestGenerate_CardChangesOutput(t *testing.T) {
	a := Generate("Jane Roe", "4111111111111111")
	b := Generate("Jane Roe", "5555555555554444")
	assert.NotEqual(t, a, b)
}

func TestGenerate_Shapes(t *testing.T) {
	f := gofakeit.New(2024)
	for i := 0; i < 500; i++ {
		c := Generate(f.Name(), f.CreditCardNumber(nil))

		assert.Regexp(t, phoneRe, c.Phone)
		assert.Regexp(t, emailRe, c.Email)
		assert.NotEmpty(t, c.FirstName)
		assert.NotEmpty(t, c.LastName)
	}
}

func TestFallbackName(t *testing.T) {
	assert.Equal(t, "Client Design", FallbackName("ORDER-12345", "10000"))
	assert.Equal(t, "Payment User", FallbackName("ARTCOM_abc", "1"))
	assert.Equal(t, "Member Premium", FallbackName("", ""))
}

func TestMixHash(t *testing.T) {
	assert.Equal(t, float64(2549939121774217000), mixHash("john doe", "4111111111111111"))
	assert.Equal(t, float64(58845163536809220), mixHash("siti", ""))
}

func TestChoose(t *testing.T) {
	table := []Weighted[string]{{"a", 1}, {"b", 2}, {"c", 1}}

	assert.Equal(t, "a", Choose(table, 0, "z"))
	assert.Equal(t, "b", Choose(table, 0.25, "z"))
	assert.Equal(t, "b", Choose(table, 0.74, "z"))
	assert.Equal(t, "c", Choose(table, 0.99, "z"))
	assert.Equal(t, "z", Choose(table, 1, "z"))
	assert.Equal(t, "z", Choose[string](nil, 0.5, "z"))
}

func TestWordsTable(t *testing.T) {
	assert.Len(t, words, 512)
	assert.Equal(t, "phoenix", words[0])
	assert.Equal(t, "vampire", words[len(words)-1])
}
