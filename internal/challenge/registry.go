package challenge

import (
	"sort"

	"github.com/abhisek/sqlchallenge/internal/schema"
)

// Template is the authored text for one (topic, category) pair.
type Template struct {
	// Question is the natural-language prompt shown to the learner.
	Question string

	// ReferenceSQL is the canonical answer. Most references wrap the window
	// function in MAX or MIN so the result is a single comparable value.
	ReferenceSQL string
}

// Key identifies a registry slot.
type Key struct {
	Topic    schema.Topic
	Category Category
}

// Entry binds a Template to its Key, used to build registries.
type Entry struct {
	Topic    schema.Topic
	Category Category
	Template Template
}

// Registry is an immutable lookup table of templates.
// Safe for concurrent use.
type Registry struct {
	entries map[Key]Template
}

// NewRegistry builds a registry from entries. Later entries for the same
// key replace earlier ones.
func NewRegistry(entries ...Entry) *Registry {
	m := make(map[Key]Template, len(entries))
	for _, e := range entries {
		m[Key{Topic: e.Topic, Category: e.Category}] = e.Template
	}
	return &Registry{entries: m}
}

var builtin = NewRegistry(builtinEntries...)

// DefaultRegistry returns the built-in question bank covering every topic
// and category.
func DefaultRegistry() *Registry {
	return builtin
}

// Lookup returns the template for the pair. The boolean is false when the
// pair has no registered template.
func (r *Registry) Lookup(topic schema.Topic, category Category) (Template, bool) {
	t, ok := r.entries[Key{Topic: topic, Category: category}]
	return t, ok
}

// Len returns the number of registered pairs.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Keys returns the registered pairs ordered by topic, then category, in
// canonical order.
func (r *Registry) Keys() []Key {
	keys := make([]Key, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ti, tj := topicIndex(keys[i].Topic), topicIndex(keys[j].Topic)
		if ti != tj {
			return ti < tj
		}
		return categoryIndex(keys[i].Category) < categoryIndex(keys[j].Category)
	})
	return keys
}

// Missing returns the pairs in topics x categories with no template.
func (r *Registry) Missing(topics []schema.Topic, categories []Category) []Key {
	var out []Key
	for _, t := range topics {
		for _, c := range categories {
			if _, ok := r.Lookup(t, c); !ok {
				out = append(out, Key{Topic: t, Category: c})
			}
		}
	}
	return out
}

func topicIndex(t schema.Topic) int {
	for i, x := range schema.Topics() {
		if x == t {
			return i
		}
	}
	return len(schema.Topics())
}

func categoryIndex(c Category) int {
	for i, x := range allCategories {
		if x == c {
			return i
		}
	}
	return len(allCategories)
}
