package schema

import (
	"fmt"
	"strings"
)

// Table is the structural view of a CREATE TABLE statement.
type Table struct {
	// Topic is the schema the table belongs to. Empty for DDL parsed
	// outside a topic.
	Topic   Topic
	Name    string
	Columns []string
}

// ParseDDL extracts the table name and ordered column definitions from a
// single CREATE TABLE statement. The column list is the text between the
// first '(' and the last ')'.
func ParseDDL(ddl string) (Table, error) {
	open := strings.Index(ddl, "(")
	end := strings.LastIndex(ddl, ")")
	if open < 0 || end < open {
		return Table{}, fmt.Errorf("no column list in DDL %q", ddl)
	}

	name := tableName(ddl[:open])
	if name == "" {
		return Table{}, fmt.Errorf("no table name in DDL %q", ddl)
	}

	return Table{
		Name:    name,
		Columns: SplitColumns(ddl[open+1 : end]),
	}, nil
}

// tableName returns the last word before the column list, which skips
// CREATE TABLE and any IF NOT EXISTS clause.
func tableName(head string) string {
	fields := strings.Fields(head)
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[len(fields)-1], "`\"")
}

// SplitColumns splits a column-list body on commas at parenthesis depth
// zero, so DECIMAL(10,2) and ENUM('a', 'b') stay whole. Tokens are trimmed
// and empty tokens dropped.
func SplitColumns(body string) []string {
	var (
		cols  []string
		cur   strings.Builder
		depth int
	)
	flush := func() {
		if tok := strings.TrimSpace(cur.String()); tok != "" {
			cols = append(cols, tok)
		}
		cur.Reset()
	}

	for _, r := range body {
		switch {
		case r == ',' && depth == 0:
			flush()
			continue
		case r == '(':
			depth++
		case r == ')':
			depth--
		}
		cur.WriteRune(r)
	}
	flush()
	return cols
}

// Render describes a topic's table for the learner: a header naming the
// schema and the table, one line per column and a closing blank line.
func Render(t Topic) (string, error) {
	ddl := t.DDL()
	if ddl == "" {
		return "", fmt.Errorf("unknown schema topic %q", t)
	}
	table, err := ParseDDL(ddl)
	if err != nil {
		return "", err
	}
	table.Topic = t
	return table.String(), nil
}

// String renders the table description.
func (t Table) String() string {
	var b strings.Builder
	if t.Topic != "" {
		fmt.Fprintf(&b, "Schema: %s\n", t.Topic)
	}
	fmt.Fprintf(&b, "Table: %s\n", t.Name)
	for _, col := range t.Columns {
		fmt.Fprintf(&b, "  - %s\n", col)
	}
	b.WriteString("\n")
	return b.String()
}

// ColumnNames returns the leading identifier of each column definition.
func (t Table) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for _, col := range t.Columns {
		if f := strings.Fields(col); len(f) > 0 {
			names = append(names, f[0])
		}
	}
	return names
}
