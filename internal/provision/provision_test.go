package provision

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sqlchallenge/internal/schema"
	"github.com/abhisek/sqlchallenge/internal/sqlexec"
)

func openPracticeDB(t *testing.T) *sqlexec.Executor {
	t.Helper()
	exec, err := sqlexec.Open(context.Background(), sqlexec.Config{
		Driver: sqlexec.DriverSQLite,
		DSN:    ":memory:",
	})
	require.NoError(t, err)
	t.Cleanup(func() { exec.Close() })
	return exec
}

func fixedNow() time.Time {
	return time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
}

func count(t *testing.T, exec *sqlexec.Executor, table string) int64 {
	t.Helper()
	res, err := exec.Execute(context.Background(), fmt.Sprintf("SELECT COUNT(*) FROM %s", table))
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	return res.Rows[0][0].(int64)
}

// number reads a DECIMAL value, which SQLite may hand back as an integer
// when it has no fractional part.
func number(t *testing.T, v any) float64 {
	t.Helper()
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	default:
		t.Fatalf("unexpected numeric type %T", v)
		return 0
	}
}

func TestProvision_AllTopics(t *testing.T) {
	exec := openPracticeDB(t)
	p := New(exec, Options{Seed: 7})

	for _, topic := range schema.Topics() {
		t.Run(topic.String(), func(t *testing.T) {
			require.NoError(t, p.Provision(context.Background(), topic))
			assert.Equal(t, int64(DefaultRows), count(t, exec, `"`+topic.String()+`"`))
		})
	}
}

func TestProvision_RefillReplacesRows(t *testing.T) {
	exec := openPracticeDB(t)
	p := New(exec, Options{Rows: 10, Seed: 1})
	ctx := context.Background()

	require.NoError(t, p.Provision(ctx, schema.TopicSales))
	require.NoError(t, p.Provision(ctx, schema.TopicSales))

	assert.Equal(t, int64(10), count(t, exec, "sales"))
}

func TestProvision_ValueRanges(t *testing.T) {
	exec := openPracticeDB(t)
	p := New(exec, Options{Seed: 42})
	ctx := context.Background()

	require.NoError(t, p.Provision(ctx, schema.TopicEmployee))
	res, err := exec.Execute(ctx, "SELECT MIN(salary), MAX(salary), COUNT(DISTINCT position) FROM employee")
	require.NoError(t, err)
	row := res.Rows[0]
	assert.GreaterOrEqual(t, number(t, row[0]), 30000.0)
	assert.LessOrEqual(t, number(t, row[1]), 80000.0)
	assert.LessOrEqual(t, row[2].(int64), int64(len(positions)))

	require.NoError(t, p.Provision(ctx, schema.TopicSales))
	res, err = exec.Execute(ctx, "SELECT MIN(product_id), MAX(product_id), MIN(sale_amount), MAX(sale_amount) FROM sales")
	require.NoError(t, err)
	row = res.Rows[0]
	assert.GreaterOrEqual(t, row[0].(int64), int64(1))
	assert.LessOrEqual(t, row[1].(int64), int64(100))
	assert.GreaterOrEqual(t, number(t, row[2]), 20.0)
	assert.LessOrEqual(t, number(t, row[3]), 1000.0)
}

func TestProvision_DatesStoredAsISOText(t *testing.T) {
	exec := openPracticeDB(t)
	p := New(exec, Options{Rows: 5, Seed: 3})
	ctx := context.Background()

	require.NoError(t, p.Provision(ctx, schema.TopicProduct))
	res, err := exec.Execute(ctx, "SELECT typeof(launch_date), launch_date || '' FROM product")
	require.NoError(t, err)
	for _, row := range res.Rows {
		assert.Equal(t, "text", row[0])
		_, err := time.Parse(time.DateOnly, row[1].(string))
		assert.NoError(t, err)
	}
}

func TestProvision_UnknownTopic(t *testing.T) {
	exec := openPracticeDB(t)
	p := New(exec, Options{})
	err := p.Provision(context.Background(), schema.Topic("orders"))
	assert.Error(t, err)
}

func TestGenerate_SameSeedSameData(t *testing.T) {
	a := New(nil, Options{Rows: 20, Seed: 99})
	b := New(nil, Options{Rows: 20, Seed: 99})
	a.now, b.now = fixedNow, fixedNow

	for _, topic := range schema.Topics() {
		da, err := a.Generate(topic)
		require.NoError(t, err)
		db, err := b.Generate(topic)
		require.NoError(t, err)
		assert.Equal(t, da, db, "topic %s", topic)
	}
}

func TestGenerate_CustomerRowsFillEveryColumn(t *testing.T) {
	p := New(nil, Options{Rows: 3, Seed: 5})
	p.now = fixedNow

	ds, err := p.Generate(schema.TopicCustomer)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "address", "loyalty", "last_order", "order_total"}, ds.Columns)
	for _, row := range ds.Rows {
		require.Len(t, row, len(ds.Columns))
		assert.Contains(t, loyaltyTiers, row[2])
		last := row[3].(time.Time)
		assert.False(t, last.After(fixedNow()))
		assert.True(t, last.After(fixedNow().AddDate(-3, 0, -1)))
	}
}

func TestDDL_Dialects(t *testing.T) {
	for _, topic := range schema.Topics() {
		mysql, err := DDL(sqlexec.DialectMySQL, topic)
		require.NoError(t, err)
		assert.Equal(t, topic.DDL(), mysql)

		lite, err := DDL(sqlexec.DialectSQLite, topic)
		require.NoError(t, err)
		assert.NotContains(t, lite, "AUTO_INCREMENT")
		assert.NotContains(t, lite, "ENUM")

		pg, err := DDL(sqlexec.DialectPostgres, topic)
		require.NoError(t, err)
		assert.Contains(t, pg, "SERIAL PRIMARY KEY")
	}

	_, err := DDL(sqlexec.Dialect("oracle"), schema.TopicSales)
	assert.Error(t, err)
	_, err = DDL(sqlexec.DialectSQLite, schema.Topic("orders"))
	assert.Error(t, err)
}

func TestInsertStatement(t *testing.T) {
	cols := []string{"a", "b", "c"}
	assert.Equal(t, `INSERT INTO "user" (a, b, c) VALUES ($1, $2, $3)`,
		insertStatement(sqlexec.DialectPostgres, sqlexec.DialectPostgres.QuoteIdent("user"), cols))
	assert.Equal(t, "INSERT INTO `user` (a, b, c) VALUES (?, ?, ?)",
		insertStatement(sqlexec.DialectMySQL, sqlexec.DialectMySQL.QuoteIdent("user"), cols))
}

func TestBindValues(t *testing.T) {
	day := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	row := []any{"x", 1.5, day}

	assert.Equal(t, []any{"x", 1.5, "2023-01-02"}, bindValues(sqlexec.DialectSQLite, row))
	assert.Equal(t, []any{"x", 1.5, day}, bindValues(sqlexec.DialectPostgres, row))
}
