package masking

import "strings"

// Strategy turns a sensitive value into its obfuscated form.
// Every Strategy must be total: no panics, no errors, for any input.
type Strategy func(string) string

// MaskEmail keeps the first character of the local part and the whole domain.
// The local part is always rendered as four asterisks, whatever its length.
func MaskEmail(s string) string {
	local, domain, ok := strings.Cut(s, "@")
	if !ok {
		return s
	}
	r := []rune(local)
	if len(r) <= 1 {
		return "*@" + domain
	}
	return string(r[0]) + "****@" + domain
}

// MaskMobile keeps the first two and last two characters.
func MaskMobile(s string) string {
	r := []rune(s)
	if len(r) < 4 {
		return s
	}
	return string(r[:2]) + "******" + string(r[len(r)-2:])
}

// MaskGeneric keeps the first and last characters. Values shorter than
// three characters collapse to "***".
func MaskGeneric(s string) string {
	r := []rune(s)
	if len(r) < 3 {
		return "***"
	}
	return string(r[0]) + "***" + string(r[len(r)-1])
}

// StrategyFor resolves the strategy for a kind.
func StrategyFor(k Kind) Strategy {
	switch k {
	case KindEmail:
		return MaskEmail
	case KindMobile:
		return MaskMobile
	default:
		return MaskGeneric
	}
}
