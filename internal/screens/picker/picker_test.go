package picker

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sqlchallenge/internal/challenge"
	"github.com/abhisek/sqlchallenge/internal/provision"
	"github.com/abhisek/sqlchallenge/internal/router"
	"github.com/abhisek/sqlchallenge/internal/schema"
	"github.com/abhisek/sqlchallenge/internal/sqlexec"
)

func newSession(t *testing.T, reg *challenge.Registry) *challenge.Session {
	t.Helper()
	exec, err := sqlexec.Open(context.Background(), sqlexec.Config{Driver: sqlexec.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { exec.Close() })

	prov := provision.New(exec, provision.Options{Rows: 10, Seed: 3})
	return challenge.NewSession(challenge.SessionConfig{
		Selector:  challenge.NewSelector(reg, prov, challenge.NewRand(5)),
		Validator: challenge.NewValidator(exec),
		Executor:  exec,
	})
}

// press sends key and feeds any resulting message back into the screen,
// returning the last command produced.
func press(p *PickerScreen, key tea.KeyPressMsg) tea.Cmd {
	_, cmd := p.Update(key)
	for cmd != nil {
		msg := cmd()
		if _, ok := msg.(router.ReplaceScreenMsg); ok {
			return cmd
		}
		_, cmd = p.Update(msg)
	}
	return nil
}

func down(n int, p *PickerScreen) {
	for i := 0; i < n; i++ {
		p.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
}

func indexOf[T comparable](items []T, v T) int {
	for i, it := range items {
		if it == v {
			return i
		}
	}
	return -1
}

func TestPickTopicThenCategory(t *testing.T) {
	sess := newSession(t, challenge.DefaultRegistry())
	p := New(sess, nil, nil)
	assert.Contains(t, p.View(100, 30), "Pick a dataset")

	down(indexOf(schema.Topics(), schema.TopicEmployee), p)
	press(p, tea.KeyPressMsg{Code: tea.KeyEnter})
	require.Equal(t, schema.TopicEmployee, p.topic)
	assert.Contains(t, p.View(100, 30), "LAG()")

	down(indexOf(challenge.Categories(), challenge.CategoryLag), p)
	cmd := press(p, tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)

	replace, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Practice", replace.Screen.Title())

	ch, ok := sess.Current()
	require.True(t, ok)
	assert.Equal(t, schema.TopicEmployee, ch.Topic)
	assert.Equal(t, challenge.CategoryLag, ch.Category)
}

func TestBackspaceReturnsToTopics(t *testing.T) {
	p := New(newSession(t, challenge.DefaultRegistry()), nil, nil)
	press(p, tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotEmpty(t, p.topic)

	p.Update(tea.KeyPressMsg{Code: tea.KeyBackspace})
	assert.Empty(t, p.topic)
	assert.Contains(t, p.View(100, 30), "Pick a dataset")
}

func TestRegistryGapShowsError(t *testing.T) {
	p := New(newSession(t, challenge.NewRegistry()), nil, nil)
	press(p, tea.KeyPressMsg{Code: tea.KeyEnter})
	cmd := press(p, tea.KeyPressMsg{Code: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.NotEmpty(t, p.errMsg)
	assert.False(t, p.busy)
	assert.Equal(t, "Choose Challenge", p.Title())
}

func TestMenusDescribeChoices(t *testing.T) {
	p := New(newSession(t, challenge.DefaultRegistry()), nil, nil)
	assert.Contains(t, p.View(120, 30), "sale_amount")

	_, cmd := p.Update(tea.KeyPressMsg{Code: '5', Text: "5"})
	require.NotNil(t, cmd)
	p.Update(cmd())
	require.Equal(t, schema.Topics()[4], p.topic)
	assert.Contains(t, p.View(120, 40), "not in random rotation")
}

func TestUngradableChoiceShowsMessage(t *testing.T) {
	p := New(newSession(t, challenge.DefaultRegistry()), nil, nil)
	p.Update(chooseDoneMsg{Err: &challenge.UngradableError{
		Topic:    schema.TopicSales,
		Category: challenge.CategoryPercentileContinuous,
		Err:      assert.AnError,
	}})
	assert.Equal(t, challenge.OutcomeUngradable.Message(), p.errMsg)
	assert.False(t, p.busy)
}
