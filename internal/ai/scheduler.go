package ai

import (
	"context"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/fieldservice/internal/model"
)

const (
	// DefaultDebounce is the quiet period after the last edit before a
	// recommendation is requested.
	DefaultDebounce = 1000 * time.Millisecond

	requestTimeout = 30 * time.Second
)

// Eligible reports whether the draft has enough text to be worth a
// recommendation.
func Eligible(title, description string) bool {
	return utf8.RuneCountInString(title) > 5 && utf8.RuneCountInString(description) > 10
}

// quietMsg fires when the debounce period of an edit has elapsed.
type quietMsg struct {
	gen         uint64
	title       string
	description string
}

// resultMsg carries a finished recommendation back to the update loop.
type resultMsg struct {
	gen uint64
	rec Recommendation
}

// Scheduler debounces draft edits and keeps only the newest answer. Each
// edit bumps a generation counter; ticks and responses from an older
// generation are dropped.
type Scheduler struct {
	rec       Recommender
	engineers []model.Engineer
	delay     time.Duration

	gen     uint64
	loading bool
}

// NewScheduler returns a scheduler that asks rec about engineers once
// edits have been quiet for delay.
func NewScheduler(rec Recommender, engineers []model.Engineer, delay time.Duration) *Scheduler {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Scheduler{rec: rec, engineers: engineers, delay: delay}
}

// Loading reports whether a request for the current draft is in flight.
func (s *Scheduler) Loading() bool {
	return s.loading
}

// Edit records a change to the draft. It returns a tick command when the
// draft is eligible, and nil otherwise.
func (s *Scheduler) Edit(title, description string) tea.Cmd {
	s.gen++
	s.loading = false

	if s.rec == nil || !Eligible(title, description) {
		return nil
	}

	gen := s.gen
	return tea.Tick(s.delay, func(time.Time) tea.Msg {
		return quietMsg{gen: gen, title: title, description: description}
	})
}

// Handle processes scheduler messages. It returns a command that starts
// the request when a current quiet period ends, and ok with the
// recommendation when a current response arrives. Anything else, including
// messages the scheduler does not own, yields a zero result.
func (s *Scheduler) Handle(msg tea.Msg) (rec Recommendation, ok bool, cmd tea.Cmd) {
	switch msg := msg.(type) {
	case quietMsg:
		if msg.gen != s.gen {
			return Recommendation{}, false, nil
		}
		s.loading = true
		return Recommendation{}, false, s.request(msg)

	case resultMsg:
		if msg.gen != s.gen {
			return Recommendation{}, false, nil
		}
		s.loading = false
		return msg.rec, true, nil
	}

	return Recommendation{}, false, nil
}

func (s *Scheduler) request(q quietMsg) tea.Cmd {
	rec := s.rec
	engineers := s.engineers
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return resultMsg{
			gen: q.gen,
			rec: rec.Recommend(ctx, q.title, q.description, engineers),
		}
	}
}
