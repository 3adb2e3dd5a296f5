package notify

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

type recordingSender struct {
	mu        sync.Mutex
	sent      []Payload
	closed    [][]string
	available bool
	err       error
}

func (r *recordingSender) Send(p Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, p)
	return nil
}

func (r *recordingSender) Available() bool { return r.available }

func (r *recordingSender) CloseTagged(prefixes []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = append(r.closed, prefixes)
	return nil
}

func (r *recordingSender) payloads() []Payload {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Payload(nil), r.sent...)
}

func TestDispatcherPrefersBackgroundChannel(t *testing.T) {
	bg := &recordingSender{available: true}
	direct := &recordingSender{available: true}
	d := Dispatcher{Direct: direct, Background: bg}

	if err := d.Display(newPayload("body", "reminder-0")); err != nil {
		t.Fatalf("display: %v", err)
	}
	if len(direct.payloads()) != 0 {
		t.Fatal("direct sender should be bypassed")
	}
	got := bg.payloads()
	if len(got) != 1 {
		t.Fatalf("expected one background notification, got %d", len(got))
	}
	p := got[0]
	if len(p.Vibrate) != 3 || p.Vibrate[0] != 200 || p.Vibrate[1] != 100 || p.Vibrate[2] != 200 {
		t.Fatalf("unexpected vibration %v", p.Vibrate)
	}
	if len(p.Actions) != 1 || p.Actions[0].ID != ActionOpen {
		t.Fatalf("expected open action, got %+v", p.Actions)
	}
	if p.Title != AppTitle || p.Tag != "reminder-0" || !p.RequireInteraction {
		t.Fatalf("payload fields lost: %+v", p)
	}
}

func TestDispatcherFallsBackToDirect(t *testing.T) {
	bg := &recordingSender{available: false}
	direct := &recordingSender{available: true}
	d := Dispatcher{Direct: direct, Background: bg}

	if err := d.Display(newPayload("body", "welcome")); err != nil {
		t.Fatalf("display: %v", err)
	}
	got := direct.payloads()
	if len(got) != 1 || got[0].ClickAction != ActionFocus {
		t.Fatalf("expected direct notification with focus click, got %+v", got)
	}
	if len(got[0].Vibrate) != 0 || len(got[0].Actions) != 0 {
		t.Fatalf("direct notification should not carry background extras: %+v", got[0])
	}
}

func TestDispatcherWithoutSenders(t *testing.T) {
	var d Dispatcher
	if d.Supported() {
		t.Fatal("empty dispatcher should not be supported")
	}
	if err := d.Display(Payload{}); !errors.Is(err, ErrNoSender) {
		t.Fatalf("expected ErrNoSender, got %v", err)
	}
}

func TestDispatcherCloseTaggedReachesAllSenders(t *testing.T) {
	bg := &recordingSender{}
	direct := &recordingSender{}
	d := Dispatcher{Direct: direct, Background: bg}
	if err := d.CloseTagged(AppTagPrefixes); err != nil {
		t.Fatalf("close: %v", err)
	}
	if len(bg.closed) != 1 || len(direct.closed) != 1 {
		t.Fatalf("expected both senders closed, bg=%d direct=%d", len(bg.closed), len(direct.closed))
	}
}

func TestAppTagPrefixes(t *testing.T) {
	for _, tag := range []string{"prayer-fajr", "reminder-2", "schedule-update", "welcome"} {
		if !matchesPrefix(tag, AppTagPrefixes) {
			t.Fatalf("expected %q to be an app tag", tag)
		}
	}
	if matchesPrefix("other", AppTagPrefixes) {
		t.Fatal("unexpected app tag match")
	}
}

func TestFeedReplacesSameTagAndBounds(t *testing.T) {
	f := NewFeed(2)
	_ = f.Send(Payload{Tag: "reminder-0", Body: "a"})
	_ = f.Send(Payload{Tag: "reminder-0", Body: "b"})
	items := f.Items()
	if len(items) != 1 || items[0].Body != "b" {
		t.Fatalf("expected replaced item, got %+v", items)
	}

	_ = f.Send(Payload{Tag: "reminder-1"})
	_ = f.Send(Payload{Tag: "reminder-2"})
	items = f.Items()
	if len(items) != 2 || items[0].Tag != "reminder-1" || items[1].Tag != "reminder-2" {
		t.Fatalf("expected oldest entry evicted, got %+v", items)
	}
}

func TestFeedCloseTagged(t *testing.T) {
	f := NewFeed(8)
	_ = f.Send(Payload{Tag: "prayer-fajr"})
	_ = f.Send(Payload{Tag: "other"})
	_ = f.Send(Payload{Tag: "schedule-update"})
	if err := f.CloseTagged(AppTagPrefixes); err != nil {
		t.Fatalf("close: %v", err)
	}
	items := f.Items()
	if len(items) != 1 || items[0].Tag != "other" {
		t.Fatalf("expected only foreign tag left, got %+v", items)
	}
}

func TestFeedAvailability(t *testing.T) {
	f := NewFeed(4)
	if f.Available() {
		t.Fatal("feed should start detached")
	}
	f.Attach()
	if !f.Available() {
		t.Fatal("feed should be available once attached")
	}
	_ = f.Send(Payload{Tag: "welcome"})
	select {
	case p := <-f.C():
		if p.Tag != "welcome" {
			t.Fatalf("unexpected payload %+v", p)
		}
	default:
		t.Fatal("expected payload on feed channel")
	}
	f.Detach()
	if f.Available() {
		t.Fatal("feed should be unavailable after detach")
	}
}

func TestExecSenderLinuxArgs(t *testing.T) {
	var name string
	var args []string
	s := ExecSender{
		GOOS: "linux",
		run: func(n string, a ...string) error {
			name, args = n, a
			return nil
		},
	}
	if err := s.Send(Payload{Title: "t", Body: "b", Icon: AppIcon, Tag: "prayer-asr", RequireInteraction: true}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if name != "notify-send" {
		t.Fatalf("unexpected binary %q", name)
	}
	joined := strings.Join(args, " ")
	for _, want := range []string{"--urgency=critical", "x-canonical-private-synchronous:prayer-asr", "--icon=" + AppIcon} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in %q", want, joined)
		}
	}
	if args[len(args)-2] != "t" || args[len(args)-1] != "b" {
		t.Fatalf("title and body must be last: %v", args)
	}
}

func TestExecSenderDarwinEscapesQuotes(t *testing.T) {
	var script string
	s := ExecSender{
		GOOS: "darwin",
		run: func(_ string, a ...string) error {
			script = a[len(a)-1]
			return nil
		},
	}
	if err := s.Send(Payload{Title: `say "hi"`, Body: "b"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if !strings.Contains(script, `say \"hi\"`) {
		t.Fatalf("expected escaped title, got %q", script)
	}
}

func TestExecSenderUnsupportedPlatform(t *testing.T) {
	s := ExecSender{GOOS: "plan9", run: func(string, ...string) error { return nil }}
	if err := s.Send(Payload{}); !errors.Is(err, ErrUnsupportedPlatform) {
		t.Fatalf("expected ErrUnsupportedPlatform, got %v", err)
	}
	if s.Available() {
		t.Fatal("unsupported platform should not be available")
	}
}
