package challenge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sqlchallenge/internal/provision"
	"github.com/abhisek/sqlchallenge/internal/schema"
	"github.com/abhisek/sqlchallenge/internal/sqlexec"
	"github.com/abhisek/sqlchallenge/internal/store"
)

func newTestSession(t *testing.T, reg *Registry) (*Session, store.EventRepo) {
	t.Helper()
	exec := openPracticeDB(t)
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	prov := provision.New(exec, provision.Options{Rows: 20, Seed: 4})
	events := st.EventRepo()
	sess := NewSession(SessionConfig{
		Selector:  NewSelector(reg, prov, NewRand(8)),
		Validator: NewValidator(exec),
		Executor:  exec,
		Events:    events,
	})
	return sess, events
}

func countRegistry() *Registry {
	return NewRegistry(Entry{
		Topic:    schema.TopicSales,
		Category: CategoryCount,
		Template: Template{
			Question:     "How many sales have been made as of the latest sale date?",
			ReferenceSQL: "SELECT MAX(n) FROM (SELECT COUNT(*) OVER (ORDER BY sale_date, id) AS n FROM sales)",
		},
	})
}

func TestSession_NoChallengeYet(t *testing.T) {
	sess, _ := newTestSession(t, countRegistry())

	_, ok := sess.Current()
	assert.False(t, ok)

	_, err := sess.Submit(context.Background(), "SELECT 1")
	assert.ErrorIs(t, err, ErrNoChallenge)
}

func TestSession_ChooseSubmitAndRecord(t *testing.T) {
	sess, events := newTestSession(t, countRegistry())
	ctx := context.Background()

	ch, err := sess.Choose(ctx, schema.TopicSales, CategoryCount)
	require.NoError(t, err)
	cur, ok := sess.Current()
	require.True(t, ok)
	assert.Equal(t, ch, cur)

	verdict, err := sess.Submit(ctx, "SELECT COUNT(*) FROM sales")
	require.NoError(t, err)
	assert.True(t, verdict.Correct)

	verdict, err = sess.Submit(ctx, "SELECT 0")
	require.NoError(t, err)
	assert.False(t, verdict.Correct)

	_, err = sess.Submit(ctx, "SELECT nope FROM sales")
	require.Error(t, err)

	attempts, correct := sess.Stats()
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 1, correct)

	recent, err := events.RecentAttempts(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, string(OutcomeUnevaluable), recent[0].Outcome)
	assert.NotEmpty(t, recent[0].ErrorMessage)
	assert.Equal(t, string(OutcomeIncorrect), recent[1].Outcome)
	assert.Equal(t, string(OutcomeCorrect), recent[2].Outcome)
	assert.Equal(t, ch.ID, recent[2].ChallengeID)
	assert.Equal(t, sess.ID(), recent[2].SessionID)
}

func TestSession_NextReplacesChallenge(t *testing.T) {
	sess, _ := newTestSession(t, countRegistry())
	ctx := context.Background()
	sess.cfg.Topics = []schema.Topic{schema.TopicSales}
	sess.cfg.Categories = []Category{CategoryCount}

	first, err := sess.Next(ctx)
	require.NoError(t, err)
	second, err := sess.Next(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	cur, _ := sess.Current()
	assert.Equal(t, second.ID, cur.ID)
}

func TestSession_FailedSelectionClearsChallenge(t *testing.T) {
	sess, _ := newTestSession(t, countRegistry())
	ctx := context.Background()

	_, err := sess.Choose(ctx, schema.TopicSales, CategoryCount)
	require.NoError(t, err)

	_, err = sess.Choose(ctx, schema.TopicSales, CategoryRank)
	var gap *TemplateNotFoundError
	require.ErrorAs(t, err, &gap)

	_, ok := sess.Current()
	assert.False(t, ok)
}

func TestSession_RunFreeForm(t *testing.T) {
	sess, _ := newTestSession(t, countRegistry())
	ctx := context.Background()
	_, err := sess.Choose(ctx, schema.TopicSales, CategoryCount)
	require.NoError(t, err)

	res, err := sess.Run(ctx, "SELECT COUNT(*) FROM sales")
	require.NoError(t, err)
	assert.Equal(t, [][]any{{int64(20)}}, res.Rows)
}

func TestSession_UngradableChallengeRefused(t *testing.T) {
	reg := NewRegistry(Entry{
		Topic:    schema.TopicSales,
		Category: CategoryPercentileDiscrete,
		Template: Template{Question: "q", ReferenceSQL: "SELECT MAX(no_such_column) FROM sales"},
	})
	sess, _ := newTestSession(t, reg)

	_, err := sess.Choose(context.Background(), schema.TopicSales, CategoryPercentileDiscrete)
	var ungradable *UngradableError
	require.ErrorAs(t, err, &ungradable)
	assert.Equal(t, CategoryPercentileDiscrete, ungradable.Category)
	assert.Equal(t, OutcomeUngradable, Classify(false, err))

	_, ok := sess.Current()
	assert.False(t, ok)
}

func TestSession_BuiltinChallengeGradesReference(t *testing.T) {
	sess, _ := newTestSession(t, DefaultRegistry())
	ctx := context.Background()

	ch, err := sess.Choose(ctx, schema.TopicEmployee, CategoryNthValue)
	require.NoError(t, err)

	verdict, err := sess.Submit(ctx, ch.ReferenceSQL)
	require.NoError(t, err)
	assert.True(t, verdict.Correct)
}

func TestSession_IsolatedExecutorKeepsData(t *testing.T) {
	exec := openPracticeDB(t)
	isolated := sqlexec.Isolated{Executor: exec}
	sess := NewSession(SessionConfig{
		Selector:  NewSelector(countRegistry(), provision.New(exec, provision.Options{Rows: 20, Seed: 4}), NewRand(8)),
		Validator: NewValidator(isolated),
		Executor:  isolated,
	})
	ctx := context.Background()
	_, err := sess.Choose(ctx, schema.TopicSales, CategoryCount)
	require.NoError(t, err)

	res, err := sess.Run(ctx, "DELETE FROM sales")
	require.NoError(t, err)
	assert.Equal(t, int64(20), res.RowsAffected)

	verdict, err := sess.Submit(ctx, "DROP TABLE sales")
	require.NoError(t, err)
	assert.False(t, verdict.Correct)

	res, err = exec.Execute(ctx, "SELECT COUNT(*) FROM sales")
	require.NoError(t, err)
	assert.Equal(t, [][]any{{int64(20)}}, res.Rows)
}
