package validator

import (
	"net/url"
	"regexp"
)

const (
	// unquoted local-part characters (RFC 5322)
	emailAtom = "[-a-z0-9!#$%&'*+/=?^_`{|}~]"
	// ASCII letters plus any non-ASCII rune, a superset of IDN labels
	alpha = `a-z\x{80}-\x{10FFFF}`
)

var (
	emailRegex = regexp.MustCompile(`(?i)^` +
		`("([ !#-\[\]-~]*|\\[ -~])+"|` + emailAtom + `+(\.` + emailAtom + `+)*)` + // quoted or unquoted local part
		`@` +
		`([0-9` + alpha + `]([-0-9` + alpha + `]{0,61}[0-9` + alpha + `])?\.)+` + // domain (RFC 1034)
		`[` + alpha + `]([-0-9` + alpha + `]{0,17}[` + alpha + `])?` + // top-level domain
		`$`)

	urlRegex = regexp.MustCompile(`(?i)^https?://(` +
		`(([-_0-9` + alpha + `]+\.)*` + // subdomains
		`[0-9` + alpha + `]([-0-9` + alpha + `]{0,61}[0-9` + alpha + `])?\.)?` + // domain
		`[` + alpha + `]([-0-9` + alpha + `]{0,17}[` + alpha + `])?` + // top-level domain
		`|[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}` + // IPv4
		`|\[[0-9a-f:]{3,39}\]` + // IPv6
		`)(:[0-9]{1,5})?` + // port
		`(/\S*)?(\?\S*)?(#\S*)?$`)
)

// IsEmail reports whether s looks like an email address.
func IsEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// IsURL reports whether s is an absolute http or https URL.
func IsURL(s string) bool {
	if !urlRegex.MatchString(s) {
		return false
	}
	_, err := url.Parse(s)
	return err == nil
}

func validateEmail(c Control, _ Argument) (Result, error) {
	return Check(IsEmail(ToString(c.Value()))), nil
}

// validateURL accepts absolute URLs. A value that only lacks the scheme is
// accepted too and normalized to its http:// form.
func validateURL(c Control, _ Argument) (Result, error) {
	value := ToString(c.Value())
	if IsURL(value) {
		return Pass(), nil
	}
	if value = "http://" + value; IsURL(value) {
		return Normalize(value), nil
	}
	return Fail(), nil
}
