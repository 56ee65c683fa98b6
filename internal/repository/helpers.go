package repository

import (
	"errors"

	"github.com/lib/pq"
)

// IsUniqueViolation reports whether the error is a Postgres unique-constraint
// violation. It is the authoritative guard behind the application-level
// duplicate checks, which are only a fast path for better error messages.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
