package store

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	sqlschema "entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/sqlchallenge/ent/schema"
)

// Table names of the event log.
const (
	challengeEventsTable  = "challenge_events"
	attemptEventsTable    = "attempt_events"
	llmRequestEventsTable = "llm_request_events"
)

// entities maps each event table to the ent schema describing it.
var entities = []struct {
	table  string
	schema ent.Interface
}{
	{challengeEventsTable, entschema.ChallengeEvent{}},
	{attemptEventsTable, entschema.AttemptEvent{}},
	{llmRequestEventsTable, entschema.LLMRequestEvent{}},
}

// Tables converts the ent schemas into migration tables, laid out the way
// ent lays out its own: an auto-increment id followed by mixin fields and
// then the schema's fields.
func Tables() ([]*sqlschema.Table, error) {
	tables := make([]*sqlschema.Table, 0, len(entities))
	for _, e := range entities {
		t, err := buildTable(e.table, e.schema)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func buildTable(name string, s ent.Interface) (*sqlschema.Table, error) {
	var (
		fields  []ent.Field
		indexes []ent.Index
	)
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	id := &sqlschema.Column{Name: "id", Type: field.TypeInt, Increment: true}
	columns := []*sqlschema.Column{id}
	byName := map[string]*sqlschema.Column{id.Name: id}
	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("%s.%s: %w", name, d.Name, d.Err)
		}
		c := &sqlschema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Unique:   d.Unique,
			Nullable: d.Optional,
			Size:     int64(d.Size),
			Comment:  d.Comment,
		}
		// Function defaults such as time.Now are applied on insert.
		if d.Default != nil && reflect.TypeOf(d.Default).Kind() != reflect.Func {
			c.Default = d.Default
		}
		columns = append(columns, c)
		byName[c.Name] = c
	}

	table := &sqlschema.Table{
		Name:       name,
		Columns:    columns,
		PrimaryKey: []*sqlschema.Column{id},
	}
	for _, idx := range indexes {
		d := idx.Descriptor()
		cols := make([]*sqlschema.Column, 0, len(d.Fields))
		for _, f := range d.Fields {
			c, ok := byName[f]
			if !ok {
				return nil, fmt.Errorf("%s: index on unknown field %q", name, f)
			}
			cols = append(cols, c)
		}
		table.Indexes = append(table.Indexes, &sqlschema.Index{
			Name:    name + "_" + strings.Join(d.Fields, "_"),
			Unique:  d.Unique,
			Columns: cols,
		})
	}
	return table, nil
}

// migrate creates missing event tables, columns and indexes.
func migrate(ctx context.Context, drv dialect.Driver) error {
	tables, err := Tables()
	if err != nil {
		return err
	}
	m, err := sqlschema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, tables...)
}
