package navigation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sections = []string{"home", "experience", "work", "contact"}

type recorder struct {
	mu     sync.Mutex
	values []string
}

func (r *recorder) listen(active string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, active)
}

func (r *recorder) got() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.values...)
}

func newController(t *testing.T, scroller Scroller) *Controller {
	t.Helper()
	c, err := New(sections, scroller)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNewValidatesSections(t *testing.T) {
	_, err := New(nil, nil)
	assert.ErrorIs(t, err, ErrNoSections)

	_, err = New([]string{"home", ""}, nil)
	assert.Error(t, err)

	_, err = New([]string{"home", "home"}, nil)
	assert.Error(t, err)
}

func TestInitialActiveIsFirstSection(t *testing.T) {
	c := newController(t, nil)
	assert.Equal(t, "home", c.Active())
	assert.Equal(t, sections, c.Sections())
}

func TestNavigateToSetsActiveBeforeScrolling(t *testing.T) {
	var c *Controller
	var seenDuringScroll string
	c = newController(t, ScrollFunc(func(id string) error {
		seenDuringScroll = c.Active()
		return nil
	}))

	c.NavigateTo("contact")

	assert.Equal(t, "contact", c.Active())
	assert.Equal(t, "contact", seenDuringScroll)
}

func TestNavigateToUnknownSectionIsNoop(t *testing.T) {
	scrolled := false
	c := newController(t, ScrollFunc(func(string) error {
		scrolled = true
		return nil
	}))
	rec := &recorder{}
	c.Subscribe(rec.listen)

	c.NavigateTo("blog")

	assert.Equal(t, "home", c.Active())
	assert.False(t, scrolled)
	assert.Empty(t, rec.got())
}

func TestNavigateToIgnoresScrollErrors(t *testing.T) {
	c := newController(t, ScrollFunc(func(string) error {
		return errors.New("no such element")
	}))
	c.NavigateTo("work")
	assert.Equal(t, "work", c.Active())
}

func TestSettingSameSectionDoesNotNotify(t *testing.T) {
	var scrolls []string
	c := newController(t, ScrollFunc(func(id string) error {
		scrolls = append(scrolls, id)
		return nil
	}))
	rec := &recorder{}
	c.Subscribe(rec.listen)

	c.NavigateTo("work")
	c.NavigateTo("work")
	c.OnSectionVisible("work")
	c.OnSectionVisible("home")
	c.NavigateTo("home")

	assert.Equal(t, []string{"work", "home"}, rec.got())
	// Clicking the active link still scrolls to it.
	assert.Equal(t, []string{"work", "work", "home"}, scrolls)
}

func TestUnsubscribe(t *testing.T) {
	c := newController(t, nil)
	rec := &recorder{}
	unsubscribe := c.Subscribe(rec.listen)

	c.NavigateTo("work")
	unsubscribe()
	c.NavigateTo("contact")

	assert.Equal(t, []string{"work"}, rec.got())
}

func TestVisibilityEventActivatesSection(t *testing.T) {
	for _, prior := range []string{"home", "experience", "work", "contact"} {
		t.Run("from "+prior, func(t *testing.T) {
			c := newController(t, nil)
			feed := NewFeed()
			defer feed.Close()
			require.NoError(t, c.ObserveSections(context.Background(), feed))

			c.NavigateTo(prior)
			feed.Publish(VisibilityEvent{SectionID: "work", Ratio: 0.42, Intersecting: true})

			assert.Eventually(t, func() bool { return c.Active() == "work" },
				time.Second, 5*time.Millisecond)
		})
	}
}

func TestVisibilityBelowThresholdIsIgnored(t *testing.T) {
	c := newController(t, nil)
	feed := NewFeed()
	defer feed.Close()
	require.NoError(t, c.ObserveSections(context.Background(), feed))

	assert.Zero(t, feed.Publish(VisibilityEvent{SectionID: "work", Ratio: 0.29, Intersecting: true}))
	assert.Zero(t, feed.Publish(VisibilityEvent{SectionID: "work", Ratio: 0.9, Intersecting: false}))
	assert.Equal(t, 1, feed.Publish(VisibilityEvent{SectionID: "contact", Ratio: 0.3, Intersecting: true}))

	assert.Eventually(t, func() bool { return c.Active() == "contact" },
		time.Second, 5*time.Millisecond)
}

func TestObserveSubsetOfSections(t *testing.T) {
	c := newController(t, nil)
	feed := NewFeed()
	defer feed.Close()
	require.NoError(t, c.ObserveSections(context.Background(), feed, "work", "blog"))

	assert.Equal(t, 1, feed.Subscribers("work"))
	assert.Zero(t, feed.Subscribers("home"))
	assert.Zero(t, feed.Subscribers("blog"))
}

func TestObserveTwice(t *testing.T) {
	c := newController(t, nil)
	feed := NewFeed()
	defer feed.Close()
	require.NoError(t, c.ObserveSections(context.Background(), feed))
	assert.ErrorIs(t, c.ObserveSections(context.Background(), feed), ErrObserving)
}

type failingSource struct{}

func (failingSource) Subscribe(context.Context, string, float64) (<-chan VisibilityEvent, error) {
	return nil, errors.New("region not rendered")
}

func TestObserveSkipsUnobservableSections(t *testing.T) {
	c := newController(t, nil)
	assert.NoError(t, c.ObserveSections(context.Background(), failingSource{}))
}

func TestCloseReleasesSubscriptions(t *testing.T) {
	c, err := New(sections, nil)
	require.NoError(t, err)
	feed := NewFeed()
	defer feed.Close()
	require.NoError(t, c.ObserveSections(context.Background(), feed))
	require.Equal(t, 1, feed.Subscribers("work"))

	require.NoError(t, c.Close())
	require.NoError(t, c.Close(), "close is idempotent")

	assert.Eventually(t, func() bool {
		for _, id := range sections {
			if feed.Subscribers(id) != 0 {
				return false
			}
		}
		return true
	}, time.Second, 5*time.Millisecond)

	c.NavigateTo("contact")
	assert.Equal(t, "home", c.Active(), "closed controller ignores navigation")
	assert.ErrorIs(t, c.ObserveSections(context.Background(), feed), ErrClosed)
}

func TestCloseWhenFeedClosesFirst(t *testing.T) {
	c := newController(t, nil)
	feed := NewFeed()
	require.NoError(t, c.ObserveSections(context.Background(), feed))
	feed.Close()

	done := make(chan struct{})
	go func() {
		_ = c.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close did not return after feed closed")
	}
}

func TestFeedSubscribeAfterClose(t *testing.T) {
	feed := NewFeed()
	feed.Close()
	feed.Close()
	_, err := feed.Subscribe(context.Background(), "home", VisibilityThreshold)
	assert.ErrorIs(t, err, ErrFeedClosed)
}

func TestCrossed(t *testing.T) {
	testCases := []struct {
		name  string
		event VisibilityEvent
		want  bool
	}{
		{"at threshold", VisibilityEvent{Ratio: 0.3, Intersecting: true}, true},
		{"above threshold", VisibilityEvent{Ratio: 1, Intersecting: true}, true},
		{"below threshold", VisibilityEvent{Ratio: 0.1, Intersecting: true}, false},
		{"leaving viewport", VisibilityEvent{Ratio: 0.5, Intersecting: false}, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.event.Crossed(VisibilityThreshold))
		})
	}
}
