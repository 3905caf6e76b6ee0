package masking

import (
	"context"
	"log/slog"
	"reflect"
)

// Outcome is the per-field result of a masking pass.
type Outcome string

const (
	OutcomeMasked  Outcome = "masked"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// FieldResult records what happened to one marked field.
type FieldResult struct {
	Path    string
	Kind    Kind
	Outcome Outcome
}

// Report summarises one masking pass. Field failures never abort a pass;
// Err is set only for failures that are not attributable to a single field,
// in which case no masked value should be trusted.
type Report struct {
	Masked   int
	Skipped  int
	Failed   int
	Fields   []FieldResult
	Failures []*FieldError
	Err      error
}

// OK reports whether the pass completed. Individual fields may still have failed.
func (r *Report) OK() bool {
	return r.Err == nil
}

func (r *Report) record(path string, kind Kind, o Outcome) {
	r.Fields = append(r.Fields, FieldResult{Path: path, Kind: kind, Outcome: o})
	switch o {
	case OutcomeMasked:
		r.Masked++
	case OutcomeSkipped:
		r.Skipped++
	case OutcomeFailed:
		r.Failed++
	}
}

// Executor applies strategies to the targets produced by a Scanner.
// It holds no per-call state and is safe for concurrent use.
type Executor struct {
	scanner *Scanner
	log     *slog.Logger
}

// NewExecutor creates an executor. A nil logger uses slog.Default().
func NewExecutor(scanner *Scanner, log *slog.Logger) *Executor {
	if scanner == nil {
		scanner = NewScanner()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Executor{scanner: scanner, log: log}
}

// MaskInPlace masks the object ptr points to. Pointers, slices and interface
// values reached through nested fields are written through, so every holder
// of a nested sub-object observes the masked values.
func (e *Executor) MaskInPlace(ctx context.Context, ptr any) Report {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return Report{Err: &PassError{Type: typeName(ptr), Err: ErrNotPointer}}
	}
	return e.run(ctx, rv.Elem(), false)
}

// MaskCopy returns a masked copy of v and leaves v unchanged. When the pass
// fails, v itself is returned alongside the report.
func (e *Executor) MaskCopy(ctx context.Context, v any) (any, Report) {
	if v == nil {
		return nil, Report{}
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return v, Report{}
		}
		c := reflect.New(rv.Type().Elem())
		c.Elem().Set(rv.Elem())
		rep := e.run(ctx, c.Elem(), true)
		if rep.Err != nil {
			return v, rep
		}
		return c.Interface(), rep
	}
	c := reflect.New(rv.Type()).Elem()
	c.Set(rv)
	rep := e.run(ctx, c, true)
	if rep.Err != nil {
		return v, rep
	}
	return c.Interface(), rep
}

func (e *Executor) run(ctx context.Context, root reflect.Value, detach bool) (rep Report) {
	defer func() {
		if r := recover(); r != nil {
			rep.Err = &PassError{Type: root.Type().String(), Err: panicError(r)}
		}
	}()

	res, err := e.scanner.scanValue(root, detach)
	if err != nil {
		rep.Err = &PassError{Type: root.Type().String(), Err: err}
		return rep
	}

	for _, w := range res.Warnings {
		e.fail(ctx, &rep, w)
	}
	for _, t := range res.Targets {
		e.apply(ctx, &rep, t)
	}
	for _, commit := range res.commits {
		commit()
	}
	return rep
}

// apply masks a single target. Any error or panic is confined to the field.
func (e *Executor) apply(ctx context.Context, rep *Report, t Target) {
	op := OpRead
	defer func() {
		if r := recover(); r != nil {
			e.fail(ctx, rep, &FieldError{Path: t.Path, Kind: t.Kind, Op: op, Err: panicError(r)})
		}
	}()

	cur, err := t.Get()
	if err != nil {
		e.fail(ctx, rep, &FieldError{Path: t.Path, Kind: t.Kind, Op: op, Err: err})
		return
	}
	if cur == nil {
		rep.record(t.Path, t.Kind, OutcomeSkipped)
		return
	}

	masked := StrategyFor(t.Kind)(*cur)

	op = OpWrite
	if err := t.Set(masked); err != nil {
		e.fail(ctx, rep, &FieldError{Path: t.Path, Kind: t.Kind, Op: op, Err: err})
		return
	}
	rep.record(t.Path, t.Kind, OutcomeMasked)
}

func (e *Executor) fail(ctx context.Context, rep *Report, fe *FieldError) {
	rep.record(fe.Path, fe.Kind, OutcomeFailed)
	rep.Failures = append(rep.Failures, fe)
	e.log.WarnContext(ctx, "Masking field failed",
		"field", fe.Path,
		"kind", fe.Kind.String(),
		"op", fe.Op,
		"error", fe.Err)
}

func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}
