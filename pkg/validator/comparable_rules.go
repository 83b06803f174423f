package validator

import "fmt"

// validateEqual passes when every value of the control matches some item of
// the argument. Both sides compare by their string form.
func validateEqual(c Control, arg Argument) (Result, error) {
	return Check(equal(c.Value(), arg)), nil
}

// validateNotEqual is the exact negation of validateEqual.
func validateNotEqual(c Control, arg Argument) (Result, error) {
	return Check(!equal(c.Value(), arg)), nil
}

func equal(value any, arg Argument) bool {
	items := arg.Items()
	for _, v := range toList(value) {
		s := ToString(v)
		matched := false
		for _, item := range items {
			if ToString(item) == s {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func validateFilled(c Control, _ Argument) (Result, error) {
	return Check(c.IsFilled()), nil
}

func validateBlank(c Control, _ Argument) (Result, error) {
	return Check(!c.IsFilled()), nil
}

// validateValid delegates to the control's own rule set.
func validateValid(c Control, _ Argument) (Result, error) {
	h, ok := c.(RuleSetHolder)
	if !ok || h.Rules() == nil {
		return Fail(), fmt.Errorf("%w: %T has no rule set", ErrUnsupportedControl, c)
	}
	valid, err := h.Rules().Valid()
	if err != nil {
		return Fail(), err
	}
	return Check(valid), nil
}

func validateSubmitted(c Control, _ Argument) (Result, error) {
	s, ok := c.(Submitter)
	if !ok {
		return Fail(), fmt.Errorf("%w: %T is not a submit control", ErrUnsupportedControl, c)
	}
	return Check(s.IsSubmittedBy()), nil
}
