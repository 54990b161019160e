package challenge

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/sqlchallenge/internal/schema"
)

type goldenEntry struct {
	Topic    string `yaml:"topic"`
	Category string `yaml:"category"`
	Question string `yaml:"question"`
	SQL      string `yaml:"sql"`
}

func loadGolden(t *testing.T) []goldenEntry {
	t.Helper()
	data, err := os.ReadFile("testdata/registry_golden.yaml")
	require.NoError(t, err)

	var doc struct {
		Entries []goldenEntry `yaml:"entries"`
	}
	require.NoError(t, yaml.Unmarshal(data, &doc))
	return doc.Entries
}

func TestRegistry_MatchesGolden(t *testing.T) {
	golden := loadGolden(t)
	reg := DefaultRegistry()

	require.Len(t, golden, 70)
	assert.Equal(t, len(golden), reg.Len())

	for _, g := range golden {
		topic, err := schema.ParseTopic(g.Topic)
		require.NoError(t, err)
		cat, err := ParseCategory(g.Category)
		require.NoError(t, err)

		tmpl, ok := reg.Lookup(topic, cat)
		if assert.True(t, ok, "missing %s/%s", g.Topic, g.Category) {
			assert.Equal(t, g.Question, tmpl.Question, "%s/%s question", g.Topic, g.Category)
			assert.Equal(t, g.SQL, tmpl.ReferenceSQL, "%s/%s sql", g.Topic, g.Category)
		}
	}
}

func TestRegistry_SalesLag(t *testing.T) {
	tmpl, ok := DefaultRegistry().Lookup(schema.TopicSales, CategoryLag)
	require.True(t, ok)
	assert.Equal(t,
		"SELECT MAX(sale_amount - LAG(sale_amount) OVER (ORDER BY sale_date)) FROM sales WHERE sale_amount IS NOT NULL",
		tmpl.ReferenceSQL)
	assert.Equal(t,
		"What is the sale amount difference between each sale and the sale that occurred just before it, sorted by sale date?",
		tmpl.Question)
}

func TestRegistry_FullCoverage(t *testing.T) {
	reg := DefaultRegistry()
	assert.Empty(t, reg.Missing(schema.Topics(), Categories()))
	assert.Len(t, reg.Keys(), len(schema.Topics())*len(Categories()))
}

func TestRegistry_LookupAbsent(t *testing.T) {
	reg := NewRegistry(Entry{
		Topic:    schema.TopicProduct,
		Category: CategoryRank,
		Template: Template{Question: "q", ReferenceSQL: "SELECT 1"},
	})

	_, ok := reg.Lookup(schema.TopicProduct, CategoryLag)
	assert.False(t, ok)
	_, ok = reg.Lookup(schema.Topic("orders"), CategoryRank)
	assert.False(t, ok)

	missing := reg.Missing([]schema.Topic{schema.TopicProduct}, []Category{CategoryRank, CategoryLag})
	assert.Equal(t, []Key{{Topic: schema.TopicProduct, Category: CategoryLag}}, missing)
}

func TestRegistry_KeysCanonicalOrder(t *testing.T) {
	reg := NewRegistry(
		Entry{Topic: schema.TopicSales, Category: CategoryRank},
		Entry{Topic: schema.TopicProduct, Category: CategoryLag},
		Entry{Topic: schema.TopicProduct, Category: CategoryCumulativeSum},
	)
	assert.Equal(t, []Key{
		{Topic: schema.TopicProduct, Category: CategoryCumulativeSum},
		{Topic: schema.TopicProduct, Category: CategoryLag},
		{Topic: schema.TopicSales, Category: CategoryRank},
	}, reg.Keys())
}

func TestRegistry_LaterEntryWins(t *testing.T) {
	reg := NewRegistry(
		Entry{Topic: schema.TopicUser, Category: CategoryCount, Template: Template{Question: "old"}},
		Entry{Topic: schema.TopicUser, Category: CategoryCount, Template: Template{Question: "new"}},
	)
	tmpl, ok := reg.Lookup(schema.TopicUser, CategoryCount)
	require.True(t, ok)
	assert.Equal(t, "new", tmpl.Question)
	assert.Equal(t, 1, reg.Len())
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"rank", CategoryRank, false},
		{"RANK()", CategoryRank, false},
		{"sum() over()", CategoryCumulativeSum, false},
		{" percentile-disc ", "", true},
		{"percentile-discrete", CategoryPercentileDiscrete, false},
		{"NTILE()", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategories_LabelsComplete(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 14)
	for _, c := range cats {
		assert.True(t, c.Valid())
		assert.NotEmpty(t, c.Label(), c)
	}
	assert.Equal(t, "PERCENTILE_DISC()", CategoryPercentileDiscrete.Label())
}
