package challenge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sqlchallenge/internal/schema"
)

type fakeProvisioner struct {
	calls []schema.Topic
	err   error
}

func (f *fakeProvisioner) Provision(_ context.Context, topic schema.Topic) error {
	f.calls = append(f.calls, topic)
	return f.err
}

func TestSelector_SameSeedSameDraws(t *testing.T) {
	a := NewSelector(DefaultRegistry(), nil, NewRand(11))
	b := NewSelector(DefaultRegistry(), nil, NewRand(11))

	for i := 0; i < 50; i++ {
		ta, ca, err := a.Draw(schema.Topics(), Categories())
		require.NoError(t, err)
		tb, cb, err := b.Draw(schema.Topics(), Categories())
		require.NoError(t, err)
		assert.Equal(t, ta, tb)
		assert.Equal(t, ca, cb)
	}
}

func TestSelector_DrawCoversEveryChoice(t *testing.T) {
	s := NewSelector(DefaultRegistry(), nil, NewRand(3))
	topics := map[schema.Topic]int{}
	cats := map[Category]int{}

	for i := 0; i < 5000; i++ {
		topic, cat, err := s.Draw(schema.Topics(), Categories())
		require.NoError(t, err)
		topics[topic]++
		cats[cat]++
	}
	assert.Len(t, topics, len(schema.Topics()))
	assert.Len(t, cats, len(Categories()))
}

func TestSelector_DrawRestrictedSets(t *testing.T) {
	s := NewSelector(DefaultRegistry(), nil, NewRand(5))
	for i := 0; i < 20; i++ {
		topic, cat, err := s.Draw([]schema.Topic{schema.TopicEmployee}, []Category{CategoryLead, CategoryLag})
		require.NoError(t, err)
		assert.Equal(t, schema.TopicEmployee, topic)
		assert.Contains(t, []Category{CategoryLead, CategoryLag}, cat)
	}
}

func TestSelector_EmptyCandidates(t *testing.T) {
	s := NewSelector(DefaultRegistry(), nil, NewRand(1))

	_, err := s.Next(context.Background(), nil, Categories())
	assert.ErrorIs(t, err, ErrNoCandidates)
	_, err = s.Next(context.Background(), schema.Topics(), []Category{})
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestSelector_NextBuildsChallenge(t *testing.T) {
	prov := &fakeProvisioner{}
	s := NewSelector(DefaultRegistry(), prov, NewRand(9))
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }

	ch, err := s.Next(context.Background(), []schema.Topic{schema.TopicSales}, []Category{CategoryLag})
	require.NoError(t, err)

	tmpl, _ := DefaultRegistry().Lookup(schema.TopicSales, CategoryLag)
	assert.Equal(t, schema.TopicSales, ch.Topic)
	assert.Equal(t, CategoryLag, ch.Category)
	assert.Equal(t, tmpl.Question, ch.Question)
	assert.Equal(t, tmpl.ReferenceSQL, ch.ReferenceSQL)
	assert.Equal(t, issued, ch.IssuedAt)
	assert.NotEmpty(t, ch.ID)
	assert.Equal(t, []schema.Topic{schema.TopicSales}, prov.calls)
}

func TestSelector_FreshIDPerChallenge(t *testing.T) {
	s := NewSelector(DefaultRegistry(), nil, NewRand(2))
	a, err := s.Build(schema.TopicUser, CategoryRank)
	require.NoError(t, err)
	b, err := s.Build(schema.TopicUser, CategoryRank)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestSelector_RegistryGapFailsFast(t *testing.T) {
	prov := &fakeProvisioner{}
	reg := NewRegistry(Entry{
		Topic:    schema.TopicProduct,
		Category: CategoryRank,
		Template: Template{Question: "q", ReferenceSQL: "SELECT 1"},
	})
	s := NewSelector(reg, prov, NewRand(1))

	ch, err := s.Next(context.Background(), []schema.Topic{schema.TopicProduct}, []Category{CategoryLag})

	var gap *TemplateNotFoundError
	require.ErrorAs(t, err, &gap)
	assert.Equal(t, schema.TopicProduct, gap.Topic)
	assert.Equal(t, CategoryLag, gap.Category)
	assert.Equal(t, Challenge{}, ch)
	// The topic is provisioned before the registry is consulted.
	assert.Equal(t, []schema.Topic{schema.TopicProduct}, prov.calls)
	assert.Equal(t, OutcomeRegistryGap, Classify(false, err))
}

func TestSelector_ProvisionFailure(t *testing.T) {
	boom := errors.New("disk full")
	s := NewSelector(DefaultRegistry(), &fakeProvisioner{err: boom}, NewRand(1))

	ch, err := s.Next(context.Background(), schema.Topics(), Categories())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Challenge{}, ch)
}
