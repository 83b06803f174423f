package validator

import "fmt"

// Rule binds a validator, its argument and its message to a control.
type Rule struct {
	// Validator names the validator and selects the catalog message.
	Validator ID
	// Func, when set, is used instead of looking Validator up in the library.
	Func Func
	// Arg is the optional validator argument.
	Arg Argument
	// Message overrides the catalog message.
	Message Message
	// Control is the validated control. The rule does not own it.
	Control Control
}

// Evaluate runs the rule's validator against its control. A successful
// normalizing validator writes the normalized value back to the control; a
// failing one leaves the control untouched.
//
// The returned error reports a misconfigured rule (unknown validator, bad
// argument, malformed pattern) and is never used for a failed validation.
func (l *Library) Evaluate(r *Rule) (bool, error) {
	if r == nil || r.Control == nil {
		return false, ErrNilControl
	}

	fn := r.Func
	if fn == nil {
		var ok bool
		if fn, ok = l.Lookup(r.Validator); !ok {
			return false, fmt.Errorf("%w: %q", ErrUnknownValidator, r.Validator)
		}
	}

	res, err := fn(r.Control, Resolve(r.Arg))
	if err != nil {
		return false, fmt.Errorf("validator %q on control %q: %w", r.Validator, r.Control.Name(), err)
	}
	if res.OK && res.Normalized {
		r.Control.SetValue(res.Value)
	}
	return res.OK, nil
}
