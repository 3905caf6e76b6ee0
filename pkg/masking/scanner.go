package masking

import (
	"fmt"
	"reflect"
)

// DefaultMaxDepth bounds recursion through `mask:"nested"` fields.
const DefaultMaxDepth = 16

// Target is one marked field selected for masking during a single pass.
// It is only valid until the pass ends.
type Target struct {
	Path string
	Kind Kind
	get  func() (*string, error)
	set  func(string) error
}

// Get reads the current value. A nil result means the value is absent.
func (t Target) Get() (*string, error) {
	return t.get()
}

// Set overwrites the field with v.
func (t Target) Set(v string) error {
	return t.set(v)
}

// ScanResult holds the targets found on one object, in declaration order,
// and the marked fields that had to be skipped.
type ScanResult struct {
	Targets  []Target
	Warnings []*FieldError

	// commits re-box values that were masked outside an interface field.
	commits []func()
	// detach clones nested containers before yielding targets inside them.
	detach bool
}

func (r *ScanResult) warn(path string, kind Kind, op string, err error) {
	r.Warnings = append(r.Warnings, &FieldError{Path: path, Kind: kind, Op: op, Err: err})
}

// Scanner enumerates the marked fields of arbitrary objects.
//
// Containers reached through nested fields (pointers, slices, interface
// values) are detached by Scan before any target inside them is yielded, so
// writes through a Target never reach memory shared with another object.
type Scanner struct {
	MaxDepth int
}

// NewScanner returns a scanner with the default depth limit.
func NewScanner() *Scanner {
	return &Scanner{MaxDepth: DefaultMaxDepth}
}

// Scan collects the targets of the object ptr points to.
func (s *Scanner) Scan(ptr any) (*ScanResult, error) {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, ErrNotPointer
	}
	return s.scanValue(rv.Elem(), true)
}

// scanValue walks an addressable value. Only a failure of the root object's
// own field listing is returned as an error; everything below the root is
// reported as a warning. With detach false, nested containers are walked
// where they are and targets write into memory the caller may share.
func (s *Scanner) scanValue(v reflect.Value, detach bool) (*ScanResult, error) {
	res := &ScanResult{detach: detach}
	if v.Kind() == reflect.Struct && isMaskable(v.Type()) {
		fields, err := maskFields(v)
		if err != nil {
			return nil, err
		}
		s.addFields(res, "", fields)
		return res, nil
	}
	s.walk(res, v, "", 0)
	return res, nil
}

func (s *Scanner) maxDepth() int {
	if s.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return s.MaxDepth
}

func (s *Scanner) walk(res *ScanResult, v reflect.Value, path string, depth int) {
	if depth > s.maxDepth() {
		res.warn(path, KindGeneric, OpAccess, ErrMaxDepth)
		return
	}

	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return
		}
		if !res.detach {
			s.walk(res, v.Elem(), path, depth+1)
			return
		}
		c := reflect.New(v.Type().Elem())
		c.Elem().Set(v.Elem())
		v.Set(c)
		s.walk(res, c.Elem(), path, depth+1)

	case reflect.Interface:
		if v.IsNil() {
			return
		}
		inner := v.Elem()
		if inner.Kind() == reflect.Pointer && !res.detach {
			if !inner.IsNil() {
				s.walk(res, inner.Elem(), path, depth+1)
			}
			return
		}
		if inner.Kind() == reflect.Pointer {
			c := reflect.New(inner.Type()).Elem()
			c.Set(inner)
			s.walk(res, c, path, depth)
			v.Set(c)
			return
		}
		box := reflect.New(inner.Type())
		box.Elem().Set(inner)
		s.walk(res, box.Elem(), path, depth+1)
		res.commits = append(res.commits, func() { v.Set(box.Elem()) })

	case reflect.Slice:
		if v.Len() == 0 {
			return
		}
		c := v
		if res.detach {
			c = reflect.MakeSlice(v.Type(), v.Len(), v.Len())
			reflect.Copy(c, v)
			v.Set(c)
		}
		for i := 0; i < c.Len(); i++ {
			s.walk(res, c.Index(i), fmt.Sprintf("%s[%d]", path, i), depth+1)
		}

	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			s.walk(res, v.Index(i), fmt.Sprintf("%s[%d]", path, i), depth+1)
		}

	case reflect.Struct:
		s.walkStruct(res, v, path, depth)
	}
}

func (s *Scanner) walkStruct(res *ScanResult, v reflect.Value, path string, depth int) {
	if isMaskable(v.Type()) {
		fields, err := maskFields(v)
		if err != nil {
			res.warn(path, KindGeneric, OpAccess, err)
			return
		}
		s.addFields(res, path, fields)
		return
	}

	for _, fp := range planFor(v.Type()).fields {
		fpath := joinPath(path, fp.name)
		if fp.err != nil {
			res.warn(fpath, fp.kind, OpAccess, fp.err)
			continue
		}
		fv := v.Field(fp.index)
		switch fp.access {
		case accessString:
			res.Targets = append(res.Targets, stringTarget(fpath, fp.kind, fv))
		case accessStringPtr:
			res.Targets = append(res.Targets, stringPtrTarget(fpath, fp.kind, fv))
		case accessNested:
			s.walkNested(res, fv, fpath, depth+1)
		}
	}
}

// walkNested isolates a panic raised while descending into one nested field.
func (s *Scanner) walkNested(res *ScanResult, v reflect.Value, path string, depth int) {
	defer func() {
		if r := recover(); r != nil {
			res.warn(path, KindGeneric, OpAccess, panicError(r))
		}
	}()
	s.walk(res, v, path, depth)
}

func (s *Scanner) addFields(res *ScanResult, path string, fields []Field) {
	for _, f := range fields {
		fpath := joinPath(path, f.Name)
		if f.Get == nil || f.Set == nil {
			res.warn(fpath, f.Kind, OpAccess, fmt.Errorf("field %q has no accessor", f.Name))
			continue
		}
		res.Targets = append(res.Targets, Target{Path: fpath, Kind: f.Kind, get: f.Get, set: f.Set})
	}
}

// maskFields calls MaskFields on the addressable struct v, converting a
// panic into an error.
func maskFields(v reflect.Value) (fields []Field, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()
	return v.Addr().Interface().(Maskable).MaskFields(), nil
}

func stringTarget(path string, kind Kind, fv reflect.Value) Target {
	return Target{
		Path: path,
		Kind: kind,
		get: func() (*string, error) {
			s := fv.String()
			if s == "" {
				return nil, nil
			}
			return &s, nil
		},
		set: func(m string) error {
			fv.SetString(m)
			return nil
		},
	}
}

func stringPtrTarget(path string, kind Kind, fv reflect.Value) Target {
	return Target{
		Path: path,
		Kind: kind,
		get: func() (*string, error) {
			if fv.IsNil() {
				return nil, nil
			}
			s := fv.Elem().String()
			return &s, nil
		},
		set: func(m string) error {
			p := reflect.New(fv.Type().Elem())
			p.Elem().SetString(m)
			fv.Set(p)
			return nil
		},
	}
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
