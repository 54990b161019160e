package challenge

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/sqlchallenge/internal/schema"
)

// Challenge is one posed question. It is created fresh by each selection
// and replaced, never mutated, when the learner moves on.
type Challenge struct {
	ID           string
	Topic        schema.Topic
	Category     Category
	Question     string
	ReferenceSQL string
	IssuedAt     time.Time
}

// Provisioner recreates and refills a topic's backing table.
type Provisioner interface {
	Provision(ctx context.Context, topic schema.Topic) error
}

// Selector draws a topic and category, prepares the dataset and resolves
// the pair to a Challenge.
type Selector struct {
	registry    *Registry
	provisioner Provisioner
	rng         *rand.Rand
	now         func() time.Time
}

// NewSelector creates a Selector. A nil provisioner skips dataset
// preparation, which is only useful for previews and tests.
func NewSelector(registry *Registry, provisioner Provisioner, rng *rand.Rand) *Selector {
	return &Selector{
		registry:    registry,
		provisioner: provisioner,
		rng:         rng,
		now:         time.Now,
	}
}

// NewRand returns a PCG-backed source. The same seed always yields the
// same sequence of draws.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Draw picks a topic and a category uniformly and independently.
func (s *Selector) Draw(topics []schema.Topic, categories []Category) (schema.Topic, Category, error) {
	if len(topics) == 0 || len(categories) == 0 {
		return "", "", ErrNoCandidates
	}
	topic := topics[s.rng.IntN(len(topics))]
	category := categories[s.rng.IntN(len(categories))]
	return topic, category, nil
}

// Next selects a new challenge. The chosen topic is provisioned before the
// registry is consulted, so the reference query always has fresh data.
// A registry gap fails with *TemplateNotFoundError; no other pair is tried.
func (s *Selector) Next(ctx context.Context, topics []schema.Topic, categories []Category) (Challenge, error) {
	topic, category, err := s.Draw(topics, categories)
	if err != nil {
		return Challenge{}, err
	}
	slog.Info("selected challenge pair", "topic", topic, "category", category)

	if s.provisioner != nil {
		if err := s.provisioner.Provision(ctx, topic); err != nil {
			return Challenge{}, fmt.Errorf("provision %s: %w", topic, err)
		}
	}

	return s.Build(topic, category)
}

// Build resolves a specific pair without drawing or provisioning.
func (s *Selector) Build(topic schema.Topic, category Category) (Challenge, error) {
	tmpl, ok := s.registry.Lookup(topic, category)
	if !ok {
		return Challenge{}, &TemplateNotFoundError{Topic: topic, Category: category}
	}
	return Challenge{
		ID:           uuid.NewString(),
		Topic:        topic,
		Category:     category,
		Question:     tmpl.Question,
		ReferenceSQL: tmpl.ReferenceSQL,
		IssuedAt:     s.now(),
	}, nil
}
