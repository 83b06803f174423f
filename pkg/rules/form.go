package rules

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/rulekit/pkg/logger"
	"github.com/dmitrymomot/rulekit/pkg/validator"
)

// Form validates the rule sets of several controls.
type Form struct {
	cfg   *config
	sets  []*Set
	index map[string]*Set
}

// NewForm returns an empty form. Options apply to every set it creates.
func NewForm(opts ...Option) *Form {
	return &Form{cfg: newConfig(opts), index: make(map[string]*Set)}
}

// Field returns the rule set of c, creating it on first use. Sets are keyed
// by control name.
func (f *Form) Field(c validator.Control) *Set {
	if s, ok := f.index[c.Name()]; ok {
		return s
	}
	s := newSet(c, f.cfg)
	f.sets = append(f.sets, s)
	f.index[c.Name()] = s
	return s
}

// Sets returns the rule sets in registration order.
func (f *Form) Sets() []*Set {
	return append([]*Set(nil), f.sets...)
}

// Validate checks every control. It returns nil when all pass, a
// ValidationErrors with one entry per failing control, or the first
// configuration error.
func (f *Form) Validate(ctx context.Context) error {
	var errs ValidationErrors
	for _, s := range f.sets {
		ve, err := s.Validate()
		if err != nil {
			f.cfg.logger.ErrorContext(ctx, "rule evaluation failed",
				logger.Control(s.control.Name()),
				logger.Error(err),
			)
			return err
		}
		for _, e := range ve {
			f.cfg.logger.DebugContext(ctx, "validation failed",
				logger.Control(e.Field),
				logger.Validator(string(e.Validator)),
			)
			errs.Add(e)
		}
	}

	if errs.IsEmpty() {
		return nil
	}
	f.cfg.logger.InfoContext(ctx, "form is invalid", slog.Int("failed_fields", len(errs)))
	return errs
}

// Valid reports whether every control passes.
func (f *Form) Valid() (bool, error) {
	for _, s := range f.sets {
		ok, err := s.Valid()
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}
