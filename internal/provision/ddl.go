package provision

import (
	"fmt"

	"github.com/abhisek/sqlchallenge/internal/schema"
	"github.com/abhisek/sqlchallenge/internal/sqlexec"
)

// sqliteDDL and postgresDDL mirror the canonical MySQL definitions in
// schema with the closest native types. ENUM columns become CHECK
// constraints.
var sqliteDDL = map[schema.Topic]string{
	schema.TopicProduct:  `CREATE TABLE IF NOT EXISTS product (id INTEGER PRIMARY KEY, name VARCHAR(255), price DECIMAL(10,2), category VARCHAR(255), launch_date DATE)`,
	schema.TopicUser:     `CREATE TABLE IF NOT EXISTS "user" (id INTEGER PRIMARY KEY, username VARCHAR(255), email VARCHAR(255), order_count INT, join_date DATE, language VARCHAR(16) CHECK (language IN ('English', 'Spanish', 'Chinese', 'Russian', 'French', 'Arabic', 'Dutch', 'Japanese')))`,
	schema.TopicCustomer: `CREATE TABLE IF NOT EXISTS customer (id INTEGER PRIMARY KEY, name VARCHAR(255), address VARCHAR(255), loyalty VARCHAR(16) CHECK (loyalty IN ('bronze', 'silver', 'gold', 'platinum')), last_order DATE, order_total DECIMAL(10,2))`,
	schema.TopicEmployee: `CREATE TABLE IF NOT EXISTS employee (id INTEGER PRIMARY KEY, name VARCHAR(255), position VARCHAR(50), salary DECIMAL(10,2), hire_date DATE)`,
	schema.TopicSales:    `CREATE TABLE IF NOT EXISTS sales (id INTEGER PRIMARY KEY, product_id INT, customer_id INT, sale_amount DECIMAL(10,2), sale_date DATE)`,
}

var postgresDDL = map[schema.Topic]string{
	schema.TopicProduct:  `CREATE TABLE IF NOT EXISTS product (id SERIAL PRIMARY KEY, name VARCHAR(255), price NUMERIC(10,2), category VARCHAR(255), launch_date DATE)`,
	schema.TopicUser:     `CREATE TABLE IF NOT EXISTS "user" (id SERIAL PRIMARY KEY, username VARCHAR(255), email VARCHAR(255), order_count INT, join_date DATE, language VARCHAR(16) CHECK (language IN ('English', 'Spanish', 'Chinese', 'Russian', 'French', 'Arabic', 'Dutch', 'Japanese')))`,
	schema.TopicCustomer: `CREATE TABLE IF NOT EXISTS customer (id SERIAL PRIMARY KEY, name VARCHAR(255), address VARCHAR(255), loyalty VARCHAR(16) CHECK (loyalty IN ('bronze', 'silver', 'gold', 'platinum')), last_order DATE, order_total NUMERIC(10,2))`,
	schema.TopicEmployee: `CREATE TABLE IF NOT EXISTS employee (id SERIAL PRIMARY KEY, name VARCHAR(255), position VARCHAR(50), salary NUMERIC(10,2), hire_date DATE)`,
	schema.TopicSales:    `CREATE TABLE IF NOT EXISTS sales (id SERIAL PRIMARY KEY, product_id INT, customer_id INT, sale_amount NUMERIC(10,2), sale_date DATE)`,
}

// DDL returns the CREATE TABLE statement for topic in dialect d.
func DDL(d sqlexec.Dialect, topic schema.Topic) (string, error) {
	if !topic.Valid() {
		return "", fmt.Errorf("unknown schema topic %q", topic)
	}
	switch d {
	case sqlexec.DialectMySQL:
		return topic.DDL(), nil
	case sqlexec.DialectSQLite:
		return sqliteDDL[topic], nil
	case sqlexec.DialectPostgres:
		return postgresDDL[topic], nil
	default:
		return "", fmt.Errorf("unsupported dialect %q", d)
	}
}
