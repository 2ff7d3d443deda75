package navigation

import (
	"context"
	"errors"
	"sync"
)

// VisibilityThreshold is the visible fraction a section must reach while
// entering the viewport to become active.
const VisibilityThreshold = 0.3

// VisibilityEvent reports a change in how much of a section is on screen.
type VisibilityEvent struct {
	SectionID    string  `json:"section"`
	Ratio        float64 `json:"ratio"`
	Intersecting bool    `json:"intersecting"`
}

// Crossed reports whether the event is a section entering the viewport with
// at least threshold of its area visible.
func (e VisibilityEvent) Crossed(threshold float64) bool {
	return e.Intersecting && e.Ratio >= threshold
}

// VisibilitySource delivers threshold-crossing events for one section until
// ctx is cancelled, after which the returned channel is closed.
type VisibilitySource interface {
	Subscribe(ctx context.Context, sectionID string, threshold float64) (<-chan VisibilityEvent, error)
}

// ErrFeedClosed is returned by Subscribe on a closed Feed.
var ErrFeedClosed = errors.New("navigation: visibility feed closed")

const feedBuffer = 16

type feedSub struct {
	ctx       context.Context
	ch        chan VisibilityEvent
	threshold float64
}

// Feed is an in-process VisibilitySource. Whatever observes the viewport
// (a browser over a socket, a terminal renderer, a test) calls Publish with
// raw events and Feed fans out the ones that cross each subscriber's
// threshold.
type Feed struct {
	mu     sync.RWMutex
	subs   map[string]map[*feedSub]struct{}
	closed bool
}

// NewFeed returns an empty feed.
func NewFeed() *Feed {
	return &Feed{subs: make(map[string]map[*feedSub]struct{})}
}

// Subscribe implements VisibilitySource.
func (f *Feed) Subscribe(ctx context.Context, sectionID string, threshold float64) (<-chan VisibilityEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, ErrFeedClosed
	}

	sub := &feedSub{ctx: ctx, ch: make(chan VisibilityEvent, feedBuffer), threshold: threshold}
	if f.subs[sectionID] == nil {
		f.subs[sectionID] = make(map[*feedSub]struct{})
	}
	f.subs[sectionID][sub] = struct{}{}

	go func() {
		<-ctx.Done()
		f.remove(sectionID, sub)
	}()
	return sub.ch, nil
}

func (f *Feed) remove(sectionID string, sub *feedSub) {
	f.mu.Lock()
	defer f.mu.Unlock()
	set, ok := f.subs[sectionID]
	if !ok {
		return
	}
	if _, ok := set[sub]; !ok {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(f.subs, sectionID)
	}
	close(sub.ch)
}

// Publish delivers e to every subscriber of its section whose threshold it
// crosses, and returns how many received it. A subscriber whose context ends
// mid-delivery is skipped.
func (f *Feed) Publish(e VisibilityEvent) int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	delivered := 0
	for sub := range f.subs[e.SectionID] {
		if !e.Crossed(sub.threshold) {
			continue
		}
		select {
		case sub.ch <- e:
			delivered++
		case <-sub.ctx.Done():
		}
	}
	return delivered
}

// Subscribers reports the live subscription count for a section.
func (f *Feed) Subscribers(sectionID string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs[sectionID])
}

// Close ends every subscription and rejects new ones.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	for id, set := range f.subs {
		for sub := range set {
			close(sub.ch)
		}
		delete(f.subs, id)
	}
}
