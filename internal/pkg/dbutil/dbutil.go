package dbutil

import "strings"

// IsConflict reports whether err is a sqlite unique-constraint violation.
// modernc.org/sqlite surfaces these as plain errors carrying the sqlite
// message, so the check is on the message text.
func IsConflict(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
