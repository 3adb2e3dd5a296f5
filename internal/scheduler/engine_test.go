package scheduler

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestEngineEmitsInTriggerOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if _, err := engine.Arm(Event{Tag: "later", TriggerAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("arm later: %v", err)
	}
	if _, err := engine.Arm(Event{Tag: "sooner", TriggerAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("arm sooner: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if first.Tag != "sooner" || second.Tag != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.Tag, second.Tag)
	}
}

func TestArmReplacesSameTag(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	first, err := engine.Arm(Event{Tag: "prayer-fajr", TriggerAt: now.Add(time.Hour)})
	if err != nil {
		t.Fatalf("arm: %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected generated event id")
	}
	if _, err := engine.Arm(Event{Tag: "prayer-fajr", TriggerAt: now.Add(30 * time.Millisecond)}); err != nil {
		t.Fatalf("re-arm: %v", err)
	}
	if engine.Pending() != 1 {
		t.Fatalf("expected one pending event per tag, got %d", engine.Pending())
	}

	ev := waitEvent(t, engine.C(), time.Second)
	if ev.ID == first.ID {
		t.Fatal("expected the replacement event to fire")
	}
	if engine.Pending() != 0 {
		t.Fatalf("expected empty queue, got %d", engine.Pending())
	}
}

func TestCancelAndCancelAll(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	for _, tag := range []string{"a", "b", "c"} {
		if _, err := engine.Arm(Event{Tag: tag, TriggerAt: now.Add(50 * time.Millisecond)}); err != nil {
			t.Fatalf("arm %s: %v", tag, err)
		}
	}
	if !engine.Cancel("b") {
		t.Fatal("expected b to be cancelled")
	}
	if engine.Cancel("b") {
		t.Fatal("expected second cancel to report nothing")
	}
	tags := engine.PendingEvents()
	if len(tags) != 2 {
		t.Fatalf("expected 2 pending, got %d", len(tags))
	}
	if n := engine.CancelAll(); n != 2 {
		t.Fatalf("expected CancelAll to drop 2, got %d", n)
	}

	select {
	case ev := <-engine.C():
		t.Fatalf("cancelled event fired: %+v", ev)
	case <-time.After(120 * time.Millisecond):
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	now := time.Now().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if _, err := engine.Arm(Event{TriggerAt: now}); err != nil {
			t.Fatalf("arm event: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped events > 0, got %d", engine.Dropped())
	}
}

func TestEngineReportsDroppedEvents(t *testing.T) {
	engine := NewEngine(1)
	var mu sync.Mutex
	var dropped []string
	engine.SetDropHandler(func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		dropped = append(dropped, ev.Tag)
	})
	engine.Start()
	defer engine.Stop()

	at := time.Now().Add(20 * time.Millisecond)
	for _, tag := range []string{"a", "b", "c"} {
		if _, err := engine.Arm(Event{Tag: tag, TriggerAt: at}); err != nil {
			t.Fatalf("arm %s: %v", tag, err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if uint64(len(dropped)) != engine.Dropped() || len(dropped) != 2 {
		t.Fatalf("expected 2 dropped events reported, got %v (counter %d)", dropped, engine.Dropped())
	}
}

func TestArmValidatesTriggerTime(t *testing.T) {
	engine := NewEngine(1)
	if _, err := engine.Arm(Event{Tag: "bad"}); err != ErrInvalidTriggerTime {
		t.Fatalf("expected ErrInvalidTriggerTime, got %v", err)
	}
}

func TestArmAfterStopFails(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	engine.Stop()
	if _, err := engine.Arm(Event{Tag: "x", TriggerAt: time.Now()}); !errors.Is(err, ErrEngineStopped) {
		t.Fatalf("expected ErrEngineStopped, got %v", err)
	}
}

func waitEvent(t *testing.T, ch <-chan Event, timeout time.Duration) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for event")
		return Event{}
	}
}
