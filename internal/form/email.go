package form

import "regexp"

// emailRegexp is the WHATWG "valid e-mail address" production used by
// browsers for <input type=email>.
var emailRegexp = regexp.MustCompile(
	"^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$",
)

// AllowEmailRune is the keystroke filter for the email field: only the
// space character is rejected.
func AllowEmailRune(r rune) bool {
	return r != ' '
}

// IsEmail reports whether value is a syntactically valid email address
func IsEmail(value string) bool {
	return emailRegexp.MatchString(value)
}
