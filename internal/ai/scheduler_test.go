package ai

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/fieldservice/internal/model"
)

type fakeRecommender struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeRecommender) Recommend(_ context.Context, title, _ string, _ []model.Engineer) Recommendation {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, title)
	return Recommendation{EngineerID: "e1", Reasoning: "for " + title}
}

func (f *fakeRecommender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

const longDesc = "Motor overheats after an hour"

func TestEligible(t *testing.T) {
	assert.False(t, Eligible("Pump", longDesc), "4-char title")
	assert.False(t, Eligible("Pumps", longDesc), "5-char title")
	assert.True(t, Eligible("Pump 2", longDesc))
	assert.False(t, Eligible("Pump 2", "too short"))
	assert.False(t, Eligible("Pump 2", "ten chars!"))
	assert.True(t, Eligible("Pump 2", "eleven char"))
	assert.True(t, Eligible("Ölpumpe", "Überhitzung!"), "counts runes")
}

func TestScheduler_ShortTitleNeverRequests(t *testing.T) {
	fake := &fakeRecommender{}
	s := NewScheduler(fake, nil, time.Millisecond)

	assert.Nil(t, s.Edit("Pump", longDesc))
	assert.False(t, s.Loading())
	assert.Zero(t, fake.count())
}

func TestScheduler_RequestsAfterQuietPeriod(t *testing.T) {
	fake := &fakeRecommender{}
	s := NewScheduler(fake, nil, time.Millisecond)

	tick := s.Edit("Pump failure", longDesc)
	require.NotNil(t, tick)

	_, ok, request := s.Handle(tick())
	assert.False(t, ok)
	require.NotNil(t, request)
	assert.True(t, s.Loading())

	rec, ok, cmd := s.Handle(request())
	assert.True(t, ok)
	assert.Nil(t, cmd)
	assert.Equal(t, "for Pump failure", rec.Reasoning)
	assert.False(t, s.Loading())
	assert.Equal(t, 1, fake.count())
}

func TestScheduler_SupersededTickIsDropped(t *testing.T) {
	fake := &fakeRecommender{}
	s := NewScheduler(fake, nil, time.Millisecond)

	first := s.Edit("Pump failure", longDesc)
	second := s.Edit("Pump failure again", longDesc)

	_, _, cmd := s.Handle(first())
	assert.Nil(t, cmd)

	_, _, cmd = s.Handle(second())
	require.NotNil(t, cmd)
	_, ok, _ := s.Handle(cmd())
	assert.True(t, ok)
	assert.Equal(t, []string{"Pump failure again"}, fake.calls)
}

func TestScheduler_StaleResponseIsDropped(t *testing.T) {
	fake := &fakeRecommender{}
	s := NewScheduler(fake, nil, time.Millisecond)

	_, _, request := s.Handle(s.Edit("Pump failure", longDesc)())
	require.NotNil(t, request)

	// The user keeps typing while the request is in flight.
	next := s.Edit("Pump failure on line 3", longDesc)

	rec, ok, _ := s.Handle(request())
	assert.False(t, ok)
	assert.Equal(t, Recommendation{}, rec)

	_, _, request = s.Handle(next())
	rec, ok, _ = s.Handle(request())
	assert.True(t, ok)
	assert.Equal(t, "for Pump failure on line 3", rec.Reasoning)
}

func TestScheduler_IgnoresForeignMessages(t *testing.T) {
	s := NewScheduler(&fakeRecommender{}, nil, 0)
	assert.Equal(t, DefaultDebounce, s.delay)

	rec, ok, cmd := s.Handle("unrelated")
	assert.False(t, ok)
	assert.Nil(t, cmd)
	assert.Equal(t, Recommendation{}, rec)
}

// Property: after any burst of edits only the last eligible edit can
// produce a result.
func TestScheduler_LastRequestWins(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("only the newest generation is delivered", prop.ForAll(
		func(n int) bool {
			s := NewScheduler(&fakeRecommender{}, nil, time.Nanosecond)
			requests := make([]tea.Cmd, 0, n)

			for i := 0; i < n; i++ {
				tick := s.Edit("Pump failure", longDesc)
				_, _, req := s.Handle(tick())
				requests = append(requests, req)
			}

			delivered := 0
			for i, req := range requests {
				_, ok, _ := s.Handle(req())
				if ok {
					delivered++
					if i != n-1 {
						return false
					}
				}
			}
			return delivered == 1
		},
		gen.IntRange(1, 8),
	))

	properties.TestingRun(t)
}
