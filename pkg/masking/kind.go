package masking

import "strings"

// Kind selects the obfuscation strategy applied to a marked field.
type Kind string

const (
	KindEmail   Kind = "email"
	KindMobile  Kind = "mobile"
	KindGeneric Kind = "generic"
)

// TagName is the struct tag that marks a field for masking, e.g. `mask:"email"`.
const TagName = "mask"

// Reserved tag values that do not name a Kind.
const (
	tagNested = "nested"
	tagIgnore = "-"
)

// ParseKind maps a tag value to a Kind. Empty and unrecognized values
// fall back to KindGeneric.
func ParseKind(s string) Kind {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindEmail:
		return KindEmail
	case KindMobile:
		return KindMobile
	default:
		return KindGeneric
	}
}

func (k Kind) String() string {
	if k == "" {
		return string(KindGeneric)
	}
	return string(k)
}
