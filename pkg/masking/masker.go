package masking

// Maskable is implemented by types that describe their own marked fields
// instead of relying on `mask` struct tags. When *T implements Maskable the
// tags on T are not consulted.
//
// MaskFields must use a pointer receiver so that Set writes reach the
// instance being masked.
type Maskable interface {
	MaskFields() []Field
}

// Field is one marked attribute exposed through Maskable.
type Field struct {
	Name string
	Kind Kind
	// Get returns the current value. A nil pointer means the value is
	// absent and the field is skipped.
	Get func() (*string, error)
	Set func(string) error
}

// StringField exposes a plain string attribute. An empty string is treated
// as absent.
func StringField(name string, kind Kind, p *string) Field {
	return Field{
		Name: name,
		Kind: kind,
		Get: func() (*string, error) {
			if *p == "" {
				return nil, nil
			}
			v := *p
			return &v, nil
		},
		Set: func(v string) error {
			*p = v
			return nil
		},
	}
}

// OptionalField exposes a *string attribute. Writes install a new pointer,
// so a value shared with another object is never modified.
func OptionalField(name string, kind Kind, pp **string) Field {
	return Field{
		Name: name,
		Kind: kind,
		Get: func() (*string, error) {
			if *pp == nil {
				return nil, nil
			}
			v := **pp
			return &v, nil
		},
		Set: func(v string) error {
			*pp = &v
			return nil
		},
	}
}
