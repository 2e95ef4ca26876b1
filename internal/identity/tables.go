package identity

var countryCodes = []Weighted[string]{
	{"+90", 95},
	{"+49", 1},
	{"+1", 1},
	{"+44", 1},
	{"+33", 1},
	{"+31", 1},
}

// operatorPrefixes applies to +90 numbers only.
var operatorPrefixes = []Weighted[string]{
	{"530", 15}, {"531", 15}, {"532", 20}, {"533", 15}, {"534", 10},
	{"535", 8}, {"536", 7}, {"537", 5}, {"538", 3}, {"539", 2},
	{"540", 8}, {"541", 10}, {"542", 12}, {"543", 10}, {"544", 8},
	{"545", 7}, {"546", 5}, {"547", 3}, {"548", 2}, {"549", 2},
	{"550", 5}, {"551", 6}, {"552", 8}, {"553", 10}, {"554", 12},
	{"555", 15}, {"556", 8}, {"557", 5}, {"558", 3}, {"559", 2},
	{"500", 3}, {"501", 3}, {"502", 3}, {"503", 3}, {"504", 2},
	{"505", 2}, {"506", 2}, {"507", 1}, {"508", 1}, {"509", 1},
}

var emailDomains = []Weighted[string]{
	{"gmail.com", 30}, {"yahoo.com", 15},
	{"hotmail.com", 12}, {"outlook.com", 10},
	{"icloud.com", 6}, {"protonmail.com", 4},
	{"yandex.com", 4}, {"mail.ru", 4},
	{"live.com", 3}, {"msn.com", 2},
	{"aol.com", 2}, {"zoho.com", 2},
	{"tutanota.com", 2}, {"fastmail.com", 2},
	{"gmx.com", 1}, {"mail.com", 1},
}

const (
	defaultCountryCode = "+90"
	defaultPrefix      = "532"
	defaultDomain      = "gmail.com"

	randomAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

var fallbackNames = [...]string{
	"Customer ArtCom", "User Payment", "Client Design", "Buyer Digital",
	"Guest Service", "Member Premium", "Order Client", "Payment User",
}
