package masking

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
)

// InboundConfig controls masking of request arguments.
type InboundConfig struct {
	Enabled bool
	// InPlace masks the caller's arguments directly instead of producing
	// masked copies, so business logic only ever sees masked values.
	InPlace bool
}

// OutboundConfig controls masking of response bodies.
type OutboundConfig struct {
	Enabled bool
	LogBody bool
}

// Config holds masking hook settings.
type Config struct {
	Inbound  InboundConfig
	Outbound OutboundConfig
}

// DefaultConfig enables both hooks, copies inbound arguments and logs
// masked response bodies.
func DefaultConfig() Config {
	return Config{
		Inbound:  InboundConfig{Enabled: true},
		Outbound: OutboundConfig{Enabled: true, LogBody: true},
	}
}

// Service exposes the two interception hooks used by the HTTP layer.
// Created once at startup; safe for concurrent use.
type Service struct {
	cfg      Config
	executor *Executor
	metrics  *Metrics
	log      *slog.Logger
}

// NewService creates a masking service. metrics and log may be nil.
func NewService(cfg Config, metrics *Metrics, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	s := &Service{
		cfg:      cfg,
		executor: NewExecutor(NewScanner(), log),
		metrics:  metrics,
		log:      log,
	}

	log.Info("Masking service initialized",
		"inbound_enabled", cfg.Inbound.Enabled,
		"inbound_in_place", cfg.Inbound.InPlace,
		"outbound_enabled", cfg.Outbound.Enabled,
		"outbound_log_body", cfg.Outbound.LogBody)

	return s
}

// Config returns the hook settings the service was created with.
func (s *Service) Config() Config {
	return s.cfg
}

// BeforeHandle masks the arguments of one API call before business logic
// runs and returns them in order; nil arguments stay nil.
//
// By default each returned value is a masked copy and the caller keeps its
// originals for business logic. In in-place mode the returned slice holds
// the same references, now masked. A failed pass yields a redaction notice
// in place of the argument (fail-closed) so that nothing unmasked reaches a
// log line built from the result.
func (s *Service) BeforeHandle(ctx context.Context, args ...any) []any {
	out := make([]any, len(args))
	copy(out, args)
	if !s.cfg.Inbound.Enabled {
		return out
	}

	for i, arg := range args {
		if isNil(arg) {
			continue
		}
		out[i] = s.maskArgument(ctx, arg)
	}
	return out
}

func (s *Service) maskArgument(ctx context.Context, arg any) (result any) {
	defer func() {
		if r := recover(); r != nil {
			s.log.ErrorContext(ctx, "Request masking panicked, redacting argument (fail-closed)",
				"type", typeName(arg), "error", panicError(r))
			result = redacted(arg)
		}
	}()

	var (
		masked any
		rep    Report
	)
	if s.cfg.Inbound.InPlace && isPointer(arg) {
		rep = s.executor.MaskInPlace(ctx, arg)
		masked = arg
	} else {
		// Values passed by copy cannot be written back, so in-place mode masks
		// a copy of them too.
		masked, rep = s.executor.MaskCopy(ctx, arg)
	}
	s.metrics.observe(DirectionInbound, &rep)

	if rep.Err != nil {
		s.log.ErrorContext(ctx, "Request masking failed, redacting argument (fail-closed)",
			"type", typeName(arg), "error", rep.Err)
		return redacted(arg)
	}
	return masked
}

// BeforeSerialize masks a response body right before it is written to the
// client. nil is returned as nil. Field-level failures still produce the
// masked body; a pass-level failure returns body unchanged (fail-open) and
// is logged at error level, never raised.
func (s *Service) BeforeSerialize(ctx context.Context, body any) (result any) {
	if isNil(body) {
		return body
	}
	if !s.cfg.Outbound.Enabled {
		return body
	}

	defer func() {
		if r := recover(); r != nil {
			s.log.ErrorContext(ctx, "Failed to mask response, continuing with unmasked body (fail-open)",
				"type", typeName(body), "error", panicError(r))
			result = body
		}
	}()

	masked, rep := s.executor.MaskCopy(ctx, body)
	s.metrics.observe(DirectionOutbound, &rep)

	if rep.Err != nil {
		s.log.ErrorContext(ctx, "Failed to mask response, continuing with unmasked body (fail-open)",
			"type", typeName(body), "error", rep.Err)
		return body
	}

	if s.cfg.Outbound.LogBody {
		s.log.InfoContext(ctx, "Masked response body",
			"type", typeName(body),
			"masked_fields", rep.Masked,
			"failed_fields", rep.Failed,
			"body", masked)
	}
	return masked
}

// Redacted replaces an argument whose masking pass failed.
type Redacted string

func redacted(v any) Redacted {
	return Redacted(fmt.Sprintf("[REDACTED: %s could not be masked]", typeName(v)))
}

func isPointer(v any) bool {
	return reflect.ValueOf(v).Kind() == reflect.Pointer
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
