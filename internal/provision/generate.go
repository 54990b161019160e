package provision

import (
	"math"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/abhisek/sqlchallenge/internal/schema"
)

// Dataset is a generated batch of rows for one topic's table. Date columns
// hold time.Time values truncated to the day.
type Dataset struct {
	Topic   schema.Topic
	Columns []string
	Rows    [][]any
}

type generator struct {
	columns []string
	row     func(f *gofakeit.Faker, now time.Time) []any
}

var (
	productCategories = []string{"Electronics", "Books", "Clothing", "Home"}
	languages         = []string{"English", "Spanish", "Chinese", "Russian", "French", "Arabic", "Dutch", "Japanese"}
	loyaltyTiers      = []string{"bronze", "silver", "gold", "platinum"}
	positions         = []string{"Manager", "Sales Associate", "Clerk", "Supervisor", "Yoga Instructor"}
)

var generators = map[schema.Topic]generator{
	schema.TopicProduct: {
		columns: []string{"name", "price", "category", "launch_date"},
		row: func(f *gofakeit.Faker, now time.Time) []any {
			return []any{
				f.ProductName(),
				money(f.Float64Range(10, 500)),
				f.RandomString(productCategories),
				dateWithin(f, now, 12),
			}
		},
	},
	schema.TopicUser: {
		columns: []string{"username", "email", "order_count", "join_date", "language"},
		row: func(f *gofakeit.Faker, now time.Time) []any {
			return []any{
				f.Username(),
				f.Email(),
				f.IntRange(1, 1000),
				dateWithin(f, now, 10),
				f.RandomString(languages),
			}
		},
	},
	schema.TopicCustomer: {
		columns: []string{"name", "address", "loyalty", "last_order", "order_total"},
		row: func(f *gofakeit.Faker, now time.Time) []any {
			return []any{
				f.Name(),
				f.Address().Address,
				f.RandomString(loyaltyTiers),
				dateWithin(f, now, 3),
				money(f.Float64Range(20, 25000)),
			}
		},
	},
	schema.TopicEmployee: {
		columns: []string{"name", "position", "salary", "hire_date"},
		row: func(f *gofakeit.Faker, now time.Time) []any {
			return []any{
				f.Name(),
				f.RandomString(positions),
				money(f.Float64Range(30000, 80000)),
				dateWithin(f, now, 5),
			}
		},
	},
	schema.TopicSales: {
		columns: []string{"product_id", "customer_id", "sale_amount", "sale_date"},
		row: func(f *gofakeit.Faker, now time.Time) []any {
			return []any{
				f.IntRange(1, 100),
				f.IntRange(1, 100),
				money(f.Float64Range(20, 1000)),
				dateWithin(f, now, 1),
			}
		},
	},
}

// generate builds n rows for topic. ok is false for unknown topics.
func generate(f *gofakeit.Faker, topic schema.Topic, n int, now time.Time) (Dataset, bool) {
	g, ok := generators[topic]
	if !ok {
		return Dataset{}, false
	}
	ds := Dataset{Topic: topic, Columns: g.columns, Rows: make([][]any, 0, n)}
	for i := 0; i < n; i++ {
		ds.Rows = append(ds.Rows, g.row(f, now))
	}
	return ds, true
}

// money rounds to cents.
func money(v float64) float64 {
	return math.Round(v*100) / 100
}

// dateWithin returns a day between years ago and today.
func dateWithin(f *gofakeit.Faker, now time.Time, years int) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	d := f.DateRange(today.AddDate(-years, 0, 0), today)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
