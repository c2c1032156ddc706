package util

import (
	"database/sql"
)

// StringToNullString converts a string to sql.NullString.
// An empty string is treated as NULL.
func StringToNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// BoolToInt maps a flag onto the 0/1 integer columns used by every supported database.
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
