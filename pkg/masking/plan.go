package masking

import (
	"reflect"
	"sync"
)

// access describes how a planned field is read and written.
type access int

const (
	accessString access = iota
	accessStringPtr
	accessNested
)

// fieldPlan is the precomputed masking metadata of one declared field.
type fieldPlan struct {
	index  int
	name   string
	kind   Kind
	access access
	// err is set when the field is marked but cannot be masked. It is
	// reported as a warning on every pass.
	err error
}

// typePlan lists the marked fields of a struct type in declaration order.
type typePlan struct {
	fields []fieldPlan
}

var (
	plans         sync.Map // reflect.Type -> *typePlan
	maskableIface = reflect.TypeFor[Maskable]()
)

// planFor returns the cached plan for a struct type, building it on first use.
// Plans are immutable once stored, so concurrent readers need no lock.
// Two goroutines racing on a new type may both build a plan; LoadOrStore
// keeps the first and both are identical.
func planFor(t reflect.Type) *typePlan {
	if p, ok := plans.Load(t); ok {
		return p.(*typePlan)
	}
	p, _ := plans.LoadOrStore(t, buildPlan(t))
	return p.(*typePlan)
}

// buildPlan inspects only the fields declared on t. Fields promoted from
// embedded structs are not walked; an embedded field is planned only when
// it carries its own tag.
func buildPlan(t reflect.Type) *typePlan {
	p := &typePlan{}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag, ok := sf.Tag.Lookup(TagName)
		if !ok || tag == tagIgnore {
			continue
		}

		fp := fieldPlan{index: i, name: sf.Name}
		if tag == tagNested {
			fp.kind = KindGeneric
			fp.access = accessNested
			if !nestable(sf.Type) {
				fp.err = ErrUnsupportedType
			}
		} else {
			fp.kind = ParseKind(tag)
			switch {
			case sf.Type.Kind() == reflect.String:
				fp.access = accessString
			case sf.Type.Kind() == reflect.Pointer && sf.Type.Elem().Kind() == reflect.String:
				fp.access = accessStringPtr
			default:
				fp.err = ErrUnsupportedType
			}
		}
		if !sf.IsExported() {
			fp.err = ErrUnexportedField
		}
		p.fields = append(p.fields, fp)
	}
	return p
}

func nestable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Struct, reflect.Interface:
		return true
	case reflect.Pointer, reflect.Slice, reflect.Array:
		return nestable(t.Elem())
	default:
		return false
	}
}

// isMaskable reports whether a pointer to t implements Maskable.
func isMaskable(t reflect.Type) bool {
	return reflect.PointerTo(t).Implements(maskableIface)
}
