package notify

import (
	"errors"
	"strings"
)

const (
	AppTitle = "تدبر الذكر"
	AppIcon  = "dhikr-logo.png"

	ActionOpen  = "open"
	ActionFocus = "focus"

	TagWelcome        = "welcome"
	TagScheduleUpdate = "schedule-update"
	prayerTagPrefix   = "prayer-"
	reminderTagPrefix = "reminder-"
)

// AppTagPrefixes matches every tag this application raises.
var AppTagPrefixes = []string{prayerTagPrefix, reminderTagPrefix, TagScheduleUpdate, TagWelcome}

var ErrNoSender = errors.New("notify: no notification sender available")

var mobileVibration = []int{200, 100, 200}

type Action struct {
	ID    string
	Title string
}

// Payload is what a platform needs to raise a notification. Tag lets
// the platform replace an earlier notification carrying the same tag.
type Payload struct {
	Title              string
	Body               string
	Icon               string
	Tag                string
	RequireInteraction bool
	Vibrate            []int
	Actions            []Action
	ClickAction        string
}

func newPayload(body, tag string) Payload {
	return Payload{
		Title:              AppTitle,
		Body:               body,
		Icon:               AppIcon,
		Tag:                tag,
		RequireInteraction: true,
	}
}

func matchesPrefix(tag string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(tag, p) {
			return true
		}
	}
	return false
}

type Sender interface {
	Send(Payload) error
}

// BackgroundSender is a persistent delivery channel that may come and go
// while the process runs.
type BackgroundSender interface {
	Sender
	Available() bool
}

// TagCloser is implemented by senders that can withdraw notifications
// they already displayed.
type TagCloser interface {
	CloseTagged(prefixes []string) error
}

// Dispatcher chooses a delivery path for every notification at the
// moment it is displayed.
type Dispatcher struct {
	Direct     Sender
	Background BackgroundSender
}

func (d Dispatcher) Display(p Payload) error {
	if d.Background != nil && d.Background.Available() {
		p.Vibrate = append([]int(nil), mobileVibration...)
		p.Actions = []Action{{ID: ActionOpen, Title: "فتح التطبيق"}}
		return d.Background.Send(p)
	}
	if d.Direct == nil {
		return ErrNoSender
	}
	p.ClickAction = ActionFocus
	return d.Direct.Send(p)
}

// Supported reports whether any delivery path exists.
func (d Dispatcher) Supported() bool {
	if d.Background != nil && d.Background.Available() {
		return true
	}
	if d.Direct == nil {
		return false
	}
	if a, ok := d.Direct.(interface{ Available() bool }); ok {
		return a.Available()
	}
	return true
}

func (d Dispatcher) CloseTagged(prefixes []string) error {
	var errs []error
	for _, s := range []Sender{d.Direct, d.Background} {
		if s == nil {
			continue
		}
		if c, ok := s.(TagCloser); ok {
			if err := c.CloseTagged(prefixes); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
