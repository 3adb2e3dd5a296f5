package model

import (
	"errors"
	"fmt"
)

const (
	// CycleLength is the number of recitations per category in bounded mode.
	CycleLength = 33
	// FullCycle is the bounded-mode total at which the state starts over.
	FullCycle = 100
)

const closingTotal = FullCycle - 1

var (
	ErrInvalidPhraseType  = errors.New("model: invalid phrase type")
	ErrInvalidDisplayMode = errors.New("model: invalid display mode")
)

type PhraseType string

const (
	PhraseTasbih PhraseType = "tasbih"
	PhraseTahmid PhraseType = "tahmid"
	PhraseTakbir PhraseType = "takbir"
)

// PhraseTypes is the fixed rotation order.
var PhraseTypes = []PhraseType{PhraseTasbih, PhraseTahmid, PhraseTakbir}

func (p PhraseType) IsValid() bool {
	switch p {
	case PhraseTasbih, PhraseTahmid, PhraseTakbir:
		return true
	default:
		return false
	}
}

func (p PhraseType) Index() int {
	for i, t := range PhraseTypes {
		if t == p {
			return i
		}
	}
	return -1
}

func (p PhraseType) Next() PhraseType {
	i := p.Index()
	if i < 0 {
		return PhraseTasbih
	}
	return PhraseTypes[(i+1)%len(PhraseTypes)]
}

func ParsePhraseType(raw string) (PhraseType, error) {
	p := PhraseType(raw)
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhraseType, raw)
	}
	return p, nil
}

type DisplayMode string

const (
	DisplayDynamic DisplayMode = "dynamic"
	DisplayList    DisplayMode = "list"
	DisplayFocus   DisplayMode = "focus"
)

func (d DisplayMode) IsValid() bool {
	switch d {
	case DisplayDynamic, DisplayList, DisplayFocus:
		return true
	default:
		return false
	}
}

func (d DisplayMode) Next() DisplayMode {
	switch d {
	case DisplayDynamic:
		return DisplayList
	case DisplayList:
		return DisplayFocus
	default:
		return DisplayDynamic
	}
}

func ParseDisplayMode(raw string) (DisplayMode, error) {
	d := DisplayMode(raw)
	if !d.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidDisplayMode, raw)
	}
	return d, nil
}

// State is the counter state restored across sessions.
type State struct {
	Count         int         `json:"count"`
	CurrentType   PhraseType  `json:"currentType"`
	TotalCount    int         `json:"totalCount"`
	IsEndlessMode bool        `json:"isEndlessMode"`
	DisplayMode   DisplayMode `json:"displayMode"`
}

func NewState() State {
	return State{
		CurrentType: PhraseTasbih,
		DisplayMode: DisplayDynamic,
	}
}

func (s State) Validate() error {
	if !s.CurrentType.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPhraseType, s.CurrentType)
	}
	if !s.DisplayMode.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidDisplayMode, s.DisplayMode)
	}
	if s.Count < 0 || s.TotalCount < 0 {
		return errors.New("model: counts must not be negative")
	}
	if !s.IsEndlessMode && (s.Count >= CycleLength || s.TotalCount >= FullCycle) {
		return errors.New("model: bounded counts out of range")
	}
	return nil
}

// Increment advances the counter by one recitation. In bounded mode the
// full-cycle check runs before the per-category rotation check.
func (s *State) Increment() {
	count := s.Count + 1
	total := s.TotalCount + 1

	if s.IsEndlessMode {
		s.Count = count
		s.TotalCount = total
		return
	}

	if total == FullCycle {
		s.Count = 0
		s.CurrentType = PhraseTasbih
		s.TotalCount = 0
		return
	}

	if count == CycleLength {
		s.Count = 0
		s.CurrentType = s.CurrentType.Next()
		s.TotalCount = total
		return
	}

	s.Count = count
	s.TotalCount = total
}

func (s *State) SetType(t PhraseType) {
	if !t.IsValid() {
		return
	}
	s.CurrentType = t
	s.Count = 0
}

// ToggleMode flips between bounded and endless counting and discards
// the progress made so far.
func (s *State) ToggleMode() {
	s.IsEndlessMode = !s.IsEndlessMode
	s.clearProgress()
}

func (s *State) Reset() {
	s.clearProgress()
}

func (s *State) CycleDisplayMode() {
	s.DisplayMode = s.DisplayMode.Next()
}

func (s *State) clearProgress() {
	s.Count = 0
	s.TotalCount = 0
	s.CurrentType = PhraseTasbih
}

func (s State) atClosing() bool {
	return !s.IsEndlessMode && s.TotalCount == closingTotal
}

func (s State) CurrentPhrase() Phrase {
	if s.atClosing() {
		return ClosingPhrase
	}
	list := PhrasesFor(s.CurrentType)
	if len(list) == 0 {
		return Phrase{}
	}
	return list[s.Count%len(list)]
}

func (s State) ButtonLabel() string {
	if s.atClosing() {
		return sealLabel
	}
	return buttonLabels[s.CurrentType]
}

func (s State) CategoryLabel() string {
	return CategoryLabelFor(s.CurrentType)
}

// Progress reports how far the current category is through its 33-count
// cycle. Endless mode has no cycle and always reports zero.
func (s State) Progress() float64 {
	if s.IsEndlessMode {
		return 0
	}
	return float64(s.Count) / float64(CycleLength)
}
