package notify

import (
	"sync"
	"sync/atomic"
)

// Feed is the in-process background channel: notifications are kept in
// a bounded inbox and pushed to whoever is attached, typically the TUI.
type Feed struct {
	mu       sync.Mutex
	items    []Payload
	limit    int
	ch       chan Payload
	attached atomic.Bool
}

func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = 20
	}
	return &Feed{
		items: make([]Payload, 0, limit),
		limit: limit,
		ch:    make(chan Payload, limit),
	}
}

func (f *Feed) Attach() { f.attached.Store(true) }

func (f *Feed) Detach() { f.attached.Store(false) }

func (f *Feed) Available() bool { return f.attached.Load() }

func (f *Feed) C() <-chan Payload { return f.ch }

// Send stores p, replacing an entry with the same tag, and offers it to
// the consumer without blocking.
func (f *Feed) Send(p Payload) error {
	f.mu.Lock()
	replaced := false
	if p.Tag != "" {
		for i := range f.items {
			if f.items[i].Tag == p.Tag {
				f.items[i] = p
				replaced = true
				break
			}
		}
	}
	if !replaced {
		f.items = append(f.items, p)
		if len(f.items) > f.limit {
			f.items = f.items[len(f.items)-f.limit:]
		}
	}
	f.mu.Unlock()

	select {
	case f.ch <- p:
	default:
	}
	return nil
}

func (f *Feed) Items() []Payload {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Payload, len(f.items))
	copy(out, f.items)
	return out
}

func (f *Feed) CloseTagged(prefixes []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.items[:0]
	for _, it := range f.items {
		if matchesPrefix(it.Tag, prefixes) {
			continue
		}
		kept = append(kept, it)
	}
	f.items = kept
	return nil
}
