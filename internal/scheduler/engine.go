package scheduler

import (
	"container/heap"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTriggerTime = errors.New("scheduler: invalid trigger time")
	ErrEngineStopped      = errors.New("scheduler: engine stopped")
)

// Event is a one-shot timer. At most one pending event exists per Tag.
type Event struct {
	ID        string
	Tag       string
	TriggerAt time.Time
	Payload   any
}

type queueItem struct {
	event Event
}

type priorityQueue []queueItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	return pq[i].event.TriggerAt.Before(pq[j].event.TriggerAt)
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
}

func (pq *priorityQueue) Push(x any) {
	*pq = append(*pq, x.(queueItem))
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}

type Engine struct {
	mu      sync.Mutex
	queue   priorityQueue
	out     chan Event
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
	onDrop  func(Event)
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:  make(priorityQueue, 0),
		out:    make(chan Event, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// C delivers events once their trigger time has passed. It is closed
// after Stop.
func (e *Engine) C() <-chan Event {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.stopped = true
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// Arm queues ev, replacing any pending event with the same tag so a
// tag can never run two timer chains at once.
func (e *Engine) Arm(ev Event) (Event, error) {
	if ev.TriggerAt.IsZero() {
		return Event{}, ErrInvalidTriggerTime
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return Event{}, ErrEngineStopped
	}

	if ev.Tag != "" {
		e.removeLocked(func(it queueItem) bool { return it.event.Tag == ev.Tag })
	}
	heap.Push(&e.queue, queueItem{event: ev})
	e.signalWakeup()
	return ev, nil
}

// Cancel drops the pending event with tag and reports whether one existed.
func (e *Engine) Cancel(tag string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	removed := e.removeLocked(func(it queueItem) bool { return it.event.Tag == tag })
	if removed > 0 {
		e.signalWakeup()
	}
	return removed > 0
}

// CancelAll drops every pending event and returns how many there were.
func (e *Engine) CancelAll() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := len(e.queue)
	e.queue = make(priorityQueue, 0)
	if n > 0 {
		e.signalWakeup()
	}
	return n
}

func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

// PendingEvents returns a snapshot of the queue ordered by trigger time.
func (e *Engine) PendingEvents() []Event {
	e.mu.Lock()
	out := make([]Event, 0, len(e.queue))
	for _, it := range e.queue {
		out = append(out, it.event)
	}
	e.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].TriggerAt.Before(out[j].TriggerAt) })
	return out
}

// SetDropHandler registers fn to receive events that were due while C
// was full. fn runs on the engine goroutine and may call Arm.
func (e *Engine) SetDropHandler(fn func(Event)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onDrop = fn
}

func (e *Engine) dropHandler() func(Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.onDrop
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) removeLocked(match func(queueItem) bool) int {
	kept := e.queue[:0]
	removed := 0
	for _, it := range e.queue {
		if match(it) {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	e.queue = kept
	if removed > 0 {
		heap.Init(&e.queue)
	}
	return removed
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := time.Until(next.TriggerAt)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			due := e.popDue(time.Now())
			for _, ev := range due {
				select {
				case e.out <- ev:
				default:
					atomic.AddUint64(&e.dropped, 1)
					if fn := e.dropHandler(); fn != nil {
						fn(ev)
					}
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			if timer != nil {
				stopTimer(timer)
			}
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (Event, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return Event{}, false
	}
	return e.queue[0].event, true
}

func (e *Engine) popDue(now time.Time) []Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Event, 0)
	for len(e.queue) > 0 {
		next := e.queue[0].event
		if next.TriggerAt.After(now) {
			break
		}
		item := heap.Pop(&e.queue).(queueItem)
		out = append(out, item.event)
	}
	return out
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
