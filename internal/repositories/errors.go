package repositories

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// mysqlDuplicateEntry is the MySQL error number for unique key violations
const mysqlDuplicateEntry = 1062

// isDuplicateEntry reports whether err is a unique key violation.
// Uniqueness constraints are the concurrency guard for enrollments, progress
// rows and certificates, so callers rely on this signal being distinguishable
// from other database errors.
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}
	return false
}
