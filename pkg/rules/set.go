package rules

import (
	"github.com/dmitrymomot/rulekit/pkg/validator"
)

// Set is the ordered list of rules attached to one control.
type Set struct {
	control validator.Control
	rules   []*validator.Rule
	cfg     *config
}

// NewSet returns an empty rule set for c.
func NewSet(c validator.Control, opts ...Option) *Set {
	return newSet(c, newConfig(opts))
}

func newSet(c validator.Control, cfg *config) *Set {
	return &Set{control: c, cfg: cfg}
}

// Add appends a rule using a library validator. The optional message
// replaces the catalog one.
func (s *Set) Add(id validator.ID, arg validator.Argument, msg ...validator.Message) *Set {
	r := &validator.Rule{Validator: id, Arg: arg, Control: s.control}
	if len(msg) > 0 {
		r.Message = msg[0]
	}
	s.rules = append(s.rules, r)
	return s
}

// AddFunc appends a rule backed by fn. id only labels the rule in errors.
func (s *Set) AddFunc(id validator.ID, fn validator.Func, arg validator.Argument, msg validator.Message) *Set {
	s.rules = append(s.rules, &validator.Rule{Validator: id, Func: fn, Arg: arg, Message: msg, Control: s.control})
	return s
}

// Control returns the control the set validates.
func (s *Set) Control() validator.Control { return s.control }

// Rules returns the rules in evaluation order.
func (s *Set) Rules() []*validator.Rule {
	return append([]*validator.Rule(nil), s.rules...)
}

// IsRequired reports whether the set contains a filled rule.
func (s *Set) IsRequired() bool {
	for _, r := range s.rules {
		if r.Func == nil && r.Validator == validator.Filled {
			return true
		}
	}
	return false
}

// Validate evaluates the rules in order and stops at the first failure,
// returning its rendered message. An optional control left empty is only
// checked by filled and blank rules. The error reports a misconfigured rule.
func (s *Set) Validate() (ValidationErrors, error) {
	r, err := s.firstFailure()
	if err != nil || r == nil {
		return nil, err
	}

	msg := s.cfg.formatter.Format(r, s.cfg.withValue)
	return ValidationErrors{{
		Field:     s.control.Name(),
		Validator: r.Validator,
		Message:   msg.String(),
		Markup:    msg.IsMarkup(),
	}}, nil
}

// Valid reports whether every rule passes. It lets the set serve as the
// nested rule set of a container control.
func (s *Set) Valid() (bool, error) {
	r, err := s.firstFailure()
	return r == nil && err == nil, err
}

func (s *Set) firstFailure() (*validator.Rule, error) {
	optional := !s.IsRequired() && !s.control.IsFilled()
	for _, r := range s.rules {
		if optional && r.Validator != validator.Filled && r.Validator != validator.Blank {
			continue
		}
		ok, err := s.cfg.library.Evaluate(r)
		if err != nil {
			return nil, err
		}
		if !ok {
			return r, nil
		}
	}
	return nil, nil
}
