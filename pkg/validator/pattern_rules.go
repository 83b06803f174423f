package validator

// validatePattern matches the whole string value against the pattern body.
// For list values every item must match; files match by name.
func (l *Library) validatePattern(c Control, arg Argument) (Result, error) {
	p, err := scalarArg(arg)
	if err != nil {
		return Fail(), err
	}
	re, err := l.compile(ToString(p))
	if err != nil {
		return Fail(), err
	}
	for _, item := range toList(c.Value()) {
		if !re.MatchString(ToString(item)) {
			return Fail(), nil
		}
	}
	return Pass(), nil
}
