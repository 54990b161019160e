package sqlexec

import (
	"fmt"
	"strconv"

	// Registered database/sql drivers.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite" // pure Go SQLite, no CGO
)

// Driver names accepted in configuration. They match the database/sql
// registration names.
const (
	DriverSQLite    = "sqlite"
	DriverSQLiteCGO = "sqlite3"
	DriverPostgres  = "pgx"
	DriverMySQL     = "mysql"
)

// Dialect captures the few syntax differences provisioning cares about.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
)

// DialectFor returns the dialect spoken by a driver.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case DriverSQLite, DriverSQLiteCGO:
		return DialectSQLite, nil
	case DriverPostgres:
		return DialectPostgres, nil
	case DriverMySQL:
		return DialectMySQL, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Placeholder returns the bind parameter marker for the n-th (1-based)
// argument.
func (d Dialect) Placeholder(n int) string {
	if d == DialectPostgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// QuoteIdent quotes an identifier. Needed for table names such as "user"
// that are reserved words in some dialects.
func (d Dialect) QuoteIdent(name string) string {
	if d == DialectMySQL {
		return "`" + name + "`"
	}
	return `"` + name + `"`
}

// TransactionalDDL reports whether schema changes can be rolled back.
// MySQL commits implicitly before and after DDL.
func (d Dialect) TransactionalDDL() bool {
	return d != DialectMySQL
}
