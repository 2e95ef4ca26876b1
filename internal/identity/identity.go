// Package identity synthesizes a stable customer profile from a display
// name and optional card digits. The same inputs always produce the same
// profile; it is never random across calls.
package identity

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cast"
)

// Customer is the synthesized contact block sent to a gateway.
type Customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// Default is returned for a blank name.
var Default = Customer{
	FirstName: "Customer",
	LastName:  "ArtCom",
	Email:     "customer@gmail.com",
	Phone:     "+628123456789",
}

// Generate derives a Customer from name and card. card may be nil, a string
// or a number; only its digits are used.
func Generate(name string, card any) Customer {
	if Trim(name) == "" {
		return Default
	}

	cleanName := normalizeName(name)
	cleanCard := Digits(cardString(card))

	base := mixHash(cleanName, cleanCard)
	first, last := splitName(cleanName)

	nameLen := float64(len(units(cleanName)))
	cardLen := float64(len(units(cleanCard)))

	phoneSeed := seedFrom(base, 7919, cardLen*1337, nameLen*2663)

	last4 := lastN(cleanCard, 4)
	if last4 == "" {
		last4 = "0000"
	}
	l4, _ := strconv.Atoi(last4)
	emailSeed := seedFrom(base, 16777619, float64(l4)*2663, nameLen*7919)

	return Customer{
		FirstName: capitalize(first),
		LastName:  capitalize(last),
		Email:     email(emailSeed, first, last),
		Phone:     phone(phoneSeed),
	}
}

func phone(seed float64) string {
	r1 := seeded(seed)
	r2 := seeded(seed + 7919)
	r3 := seeded(seed + 15887)
	r4 := seeded(seed + 23873)

	code := Choose(countryCodes, r1, defaultCountryCode)
	if code == "+90" {
		prefix := Choose(operatorPrefixes, r2, defaultPrefix)
		return "+90" + prefix +
			strconv.Itoa(scaled(r3, 900)+100) +
			strconv.Itoa(scaled(r4, 9000)+1000)
	}
	return code +
		strconv.Itoa(scaled(r2, 900)+100) +
		strconv.Itoa(scaled(r3, 900000)+100000)
}

func email(seed float64, first, last string) string {
	e1 := seeded(seed + 19937)
	e2 := seeded(seed + 23209)
	e3 := seeded(seed + 29873)
	e4 := seeded(seed + 31607)
	e5 := seeded(seed + 37283)

	domain := Choose(emailDomains, e1, defaultDomain)

	fiveDigits := pad(scaled(e3, 99999), 5)
	year := scaled(e4, 30) + 1990
	twoDigits := pad(scaled(e5, 100), 2)
	n := len(words)

	var local string
	switch scaled(e2, 8) {
	case 0:
		local = prefix(first, 4) + prefix(last, 3) + twoDigits
	case 1:
		local = first + strconv.Itoa(year)
	case 2:
		local = words[scaled(e3, n)] + twoDigits
	case 3:
		local = words[scaled(e3, n)] + words[scaled(e4, n)] + strconv.Itoa(scaled(e5, 100))
	case 4:
		local = prefix(first, 3) + words[scaled(e4, n)] + twoDigits
	case 5:
		var b strings.Builder
		for i := 0; i < 8; i++ {
			b.WriteByte(randomAlphabet[scaled(seeded(seed+float64(i*47)), len(randomAlphabet))])
		}
		local = b.String()
	case 6:
		local = strings.ToLower(prefix(first, 1) + last + fiveDigits[:3])
	case 7:
		local = words[scaled(e2, n)] + "_" + strconv.Itoa(scaled(e5, 9999))
	}

	local = sanitizeLocal(local)
	if len(local) > 15 {
		local = local[:15]
	}
	if len(local) < 3 {
		local = "user" + strconv.Itoa(scaled(e5, 99999))
	}
	return local + "@" + domain
}

// normalizeName trims, lowercases and keeps only [a-z0-9] plus whitespace.
func normalizeName(name string) string {
	lower := strings.ToLower(Trim(name))
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || isSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// splitName splits on the ASCII space only; other whitespace stays inside a token.
func splitName(clean string) (first, last string) {
	var parts []string
	for _, p := range strings.Split(clean, " ") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	first, last = "customer", "artcom"
	if len(parts) > 0 {
		first = parts[0]
	}
	if len(parts) > 1 {
		last = strings.Join(parts[1:], "")
	}
	return first, last
}

// Digits keeps only ASCII digits.
func Digits(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func cardString(card any) string {
	if card == nil {
		return ""
	}
	return cast.ToString(card)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// prefix returns the first n runes of s.
func prefix(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

func pad(v, width int) string {
	s := strconv.Itoa(v)
	for len(s) < width {
		s = "0" + s
	}
	return s
}

func sanitizeLocal(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '.', c == '_', c == '-':
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Trim removes leading and trailing whitespace as isSpace defines it.
func Trim(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// isSpace matches the whitespace class used by browsers for trim and \s:
// unicode spaces plus the byte order mark, minus U+0085.
func isSpace(r rune) bool {
	switch r {
	case '\uFEFF':
		return true
	case '\u0085':
		return false
	}
	return unicode.IsSpace(r)
}

// FallbackName picks a stable display name for orders that carry none.
func FallbackName(orderID, amount string) string {
	if orderID == "" {
		orderID = "default"
	}
	if amount == "" {
		amount = "1000"
	}
	return fallbackNames[djb2(orderID+amount)%int64(len(fallbackNames))]
}
