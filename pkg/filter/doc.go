// Package filter normalizes submitted values before they are validated.
//
// Filters are referenced by name so that form schemas can list them:
//
//	fn, err := filter.Chain("trim", "lower")
//	value = filter.Apply(value, fn)
//
// Conversions ("int", "float") keep values they cannot parse, leaving the
// decision to the integer and float validators.
package filter
