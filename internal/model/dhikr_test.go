package model

import (
	"errors"
	"testing"
)

func TestNewStateDefaults(t *testing.T) {
	s := NewState()
	if s.Count != 0 || s.TotalCount != 0 || s.CurrentType != PhraseTasbih {
		t.Fatalf("unexpected default state: %+v", s)
	}
	if s.IsEndlessMode || s.DisplayMode != DisplayDynamic {
		t.Fatalf("unexpected default modes: %+v", s)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("expected default state to be valid, got %v", err)
	}
}

func TestBoundedIncrementKeepsInvariant(t *testing.T) {
	s := NewState()
	for i := 1; i <= 250; i++ {
		s.Increment()
		want := i % FullCycle
		if s.TotalCount != want {
			t.Fatalf("step %d: total got %d want %d", i, s.TotalCount, want)
		}
		if s.TotalCount == FullCycle-1 {
			// the 99th count rotates out of takbir before the seal
			if s.Count != 0 || s.CurrentType != PhraseTasbih {
				t.Fatalf("step %d: unexpected closing state: %+v", i, s)
			}
			if got := s.CurrentPhrase(); got != ClosingPhrase {
				t.Fatalf("step %d: expected closing phrase, got %+v", i, got)
			}
			continue
		}
		if got := s.Count + CycleLength*s.CurrentType.Index(); got != s.TotalCount {
			t.Fatalf("step %d: invariant broken: %+v", i, s)
		}
		if s.Count < 0 || s.Count >= CycleLength {
			t.Fatalf("step %d: count out of range: %d", i, s.Count)
		}
	}
}

func TestThirtyThreeIncrementsRotateToTahmid(t *testing.T) {
	s := NewState()
	for i := 0; i < 33; i++ {
		s.Increment()
	}
	if s.Count != 0 || s.CurrentType != PhraseTahmid || s.TotalCount != 33 {
		t.Fatalf("unexpected state after 33: %+v", s)
	}
	for i := 0; i < 33; i++ {
		s.Increment()
	}
	if s.Count != 0 || s.CurrentType != PhraseTakbir || s.TotalCount != 66 {
		t.Fatalf("unexpected state after 66: %+v", s)
	}
}

func TestNinetyNineShowsClosingPhrase(t *testing.T) {
	s := NewState()
	for i := 0; i < 99; i++ {
		s.Increment()
	}
	if s.TotalCount != 99 {
		t.Fatalf("expected total 99, got %d", s.TotalCount)
	}
	if got := s.CurrentPhrase(); got != ClosingPhrase {
		t.Fatalf("expected closing phrase, got %+v", got)
	}
	if s.ButtonLabel() != sealLabel {
		t.Fatalf("expected seal label, got %q", s.ButtonLabel())
	}

	s.SetType(PhraseTasbih)
	s.TotalCount = 99
	if got := s.CurrentPhrase(); got != ClosingPhrase {
		t.Fatalf("closing phrase must not depend on category, got %+v", got)
	}
}

func TestHundredIncrementsReturnToInitialState(t *testing.T) {
	s := NewState()
	s.DisplayMode = DisplayFocus
	for i := 0; i < 100; i++ {
		s.Increment()
	}
	want := NewState()
	want.DisplayMode = DisplayFocus
	if s != want {
		t.Fatalf("expected %+v, got %+v", want, s)
	}
}

func TestEndlessModeNeverRotates(t *testing.T) {
	s := NewState()
	s.ToggleMode()
	s.SetType(PhraseTakbir)
	for i := 0; i < 1000; i++ {
		s.Increment()
	}
	if s.Count != 1000 || s.TotalCount != 1000 {
		t.Fatalf("unexpected endless counts: %+v", s)
	}
	if s.CurrentType != PhraseTakbir {
		t.Fatalf("expected type unchanged, got %q", s.CurrentType)
	}
	s.TotalCount = 99
	if s.CurrentPhrase() == ClosingPhrase {
		t.Fatal("endless mode must not show the closing phrase")
	}
}

func TestToggleModeDiscardsProgress(t *testing.T) {
	states := []State{
		NewState(),
		{Count: 12, CurrentType: PhraseTahmid, TotalCount: 45, DisplayMode: DisplayList},
		{Count: 500, CurrentType: PhraseTakbir, TotalCount: 500, IsEndlessMode: true, DisplayMode: DisplayFocus},
	}
	for _, before := range states {
		s := before
		s.ToggleMode()
		if s.Count != 0 || s.TotalCount != 0 || s.CurrentType != PhraseTasbih {
			t.Fatalf("toggle from %+v left progress: %+v", before, s)
		}
		if s.IsEndlessMode == before.IsEndlessMode {
			t.Fatalf("toggle from %+v did not flip mode", before)
		}
		if s.DisplayMode != before.DisplayMode {
			t.Fatalf("toggle changed display mode: %+v", s)
		}
	}
}

func TestSetTypeKeepsTotal(t *testing.T) {
	s := State{Count: 10, CurrentType: PhraseTasbih, TotalCount: 10, DisplayMode: DisplayDynamic}
	s.SetType(PhraseTakbir)
	if s.Count != 0 || s.CurrentType != PhraseTakbir || s.TotalCount != 10 {
		t.Fatalf("unexpected state after SetType: %+v", s)
	}
	s.SetType(PhraseType("bogus"))
	if s.CurrentType != PhraseTakbir {
		t.Fatalf("invalid type must be ignored, got %q", s.CurrentType)
	}
}

func TestResetKeepsModes(t *testing.T) {
	s := State{Count: 7, CurrentType: PhraseTahmid, TotalCount: 7, IsEndlessMode: true, DisplayMode: DisplayList}
	s.Reset()
	want := State{CurrentType: PhraseTasbih, IsEndlessMode: true, DisplayMode: DisplayList}
	if s != want {
		t.Fatalf("expected %+v, got %+v", want, s)
	}
}

func TestCurrentPhraseWrapsAround(t *testing.T) {
	s := NewState()
	list := PhrasesFor(PhraseTasbih)
	s.Count = len(list) + 1
	if got := s.CurrentPhrase(); got != list[1] {
		t.Fatalf("expected wraparound to %+v, got %+v", list[1], got)
	}
	for _, p := range PhraseTypes {
		if len(PhrasesFor(p)) == 0 {
			t.Fatalf("no phrases for %q", p)
		}
		if buttonLabels[p] == "" || categoryLabels[p] == "" {
			t.Fatalf("missing labels for %q", p)
		}
	}
}

func TestCycleDisplayMode(t *testing.T) {
	s := NewState()
	want := []DisplayMode{DisplayList, DisplayFocus, DisplayDynamic}
	for _, w := range want {
		s.CycleDisplayMode()
		if s.DisplayMode != w {
			t.Fatalf("expected %q, got %q", w, s.DisplayMode)
		}
	}
}

func TestParseEnums(t *testing.T) {
	if p, err := ParsePhraseType("tahmid"); err != nil || p != PhraseTahmid {
		t.Fatalf("parse tahmid: %q %v", p, err)
	}
	if _, err := ParsePhraseType("tahlil"); !errors.Is(err, ErrInvalidPhraseType) {
		t.Fatalf("expected ErrInvalidPhraseType, got %v", err)
	}
	if _, err := ParseDisplayMode("grid"); !errors.Is(err, ErrInvalidDisplayMode) {
		t.Fatalf("expected ErrInvalidDisplayMode, got %v", err)
	}
}

func TestValidateRejectsBoundedOverflow(t *testing.T) {
	s := State{Count: 40, CurrentType: PhraseTasbih, TotalCount: 40, DisplayMode: DisplayDynamic}
	if err := s.Validate(); err == nil {
		t.Fatal("expected bounded overflow to be invalid")
	}
	s.IsEndlessMode = true
	if err := s.Validate(); err != nil {
		t.Fatalf("expected endless overflow to be valid, got %v", err)
	}
}
