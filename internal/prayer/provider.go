package prayer

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

type NextPrayer struct {
	Name          Prayer
	Time          time.Time
	RemainingTime string
}

// Locale holds the words used to describe the time left until a prayer.
type Locale struct {
	Hours          string
	Minutes        string
	LessThanMinute string
}

var (
	ArabicLocale  = Locale{Hours: "ساعة", Minutes: "دقيقة", LessThanMinute: "أقل من دقيقة"}
	EnglishLocale = Locale{Hours: "h", Minutes: "min", LessThanMinute: "less than a minute"}
)

func LocaleFor(tag string) Locale {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(tag)), "en") {
		return EnglishLocale
	}
	return ArabicLocale
}

// FormatRemaining renders whole hours and minutes of d. Hours are left
// out when zero.
func (l Locale) FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	if hours == 0 && minutes == 0 {
		return l.LessThanMinute
	}
	parts := make([]string, 0, 2)
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", hours, l.Hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", minutes, l.Minutes))
	}
	return strings.Join(parts, " ")
}

type cacheKey struct {
	day    string
	loc    string
	coords Coordinates
}

// Provider answers prayer-time queries. Results are memoised per
// calendar day and coordinates, which does not change what callers see
// because the calculation is a pure function of both.
type Provider struct {
	calc   Calculator
	locale Locale
	now    func() time.Time

	mu    sync.Mutex
	cache map[cacheKey]Times
}

type ProviderOption func(*Provider)

func WithClock(now func() time.Time) ProviderOption {
	return func(p *Provider) { p.now = now }
}

func WithLocale(l Locale) ProviderOption {
	return func(p *Provider) { p.locale = l }
}

func NewProvider(calc Calculator, opts ...ProviderOption) *Provider {
	if calc == nil {
		calc = MWLCalculator{}
	}
	p := &Provider{
		calc:   calc,
		locale: ArabicLocale,
		now:    time.Now,
		cache:  make(map[cacheKey]Times),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) Now() time.Time {
	return p.now()
}

func (p *Provider) GetPrayerTimes(coords Coordinates, date time.Time) (Times, error) {
	key := cacheKey{day: date.Format("2006-01-02"), loc: date.Location().String(), coords: coords}
	p.mu.Lock()
	if cached, ok := p.cache[key]; ok {
		p.mu.Unlock()
		return cached, nil
	}
	p.mu.Unlock()

	times, err := p.calc.Calculate(coords, date)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	if len(p.cache) > 8 {
		p.cache = make(map[cacheKey]Times)
	}
	p.cache[key] = times
	p.mu.Unlock()
	return times, nil
}

// GetNextPrayer picks the first of today's prayers, or tomorrow's Fajr,
// that is strictly later than now.
func (p *Provider) GetNextPrayer(coords Coordinates) (NextPrayer, error) {
	now := p.now()
	today, err := p.GetPrayerTimes(coords, now)
	if err != nil {
		return NextPrayer{}, err
	}
	tomorrow, err := p.GetPrayerTimes(coords, now.AddDate(0, 0, 1))
	if err != nil {
		return NextPrayer{}, err
	}

	candidates := today.Ordered()
	if fajr, ok := tomorrow[Fajr]; ok {
		candidates = append(candidates, Entry{Name: Fajr, Time: fajr})
	}
	if len(candidates) == 0 {
		return NextPrayer{}, fmt.Errorf("prayer: no prayer times for %s", coords)
	}

	next := candidates[0]
	for _, c := range candidates {
		if c.Time.After(now) {
			next = c
			break
		}
	}
	return NextPrayer{
		Name:          next.Name,
		Time:          next.Time,
		RemainingTime: p.locale.FormatRemaining(next.Time.Sub(now)),
	}, nil
}
