package model

import (
	"sort"
	"time"
)

const (
	StatsRetentionDays = 30
	DateLayout         = "2006-01-02"
)

// Stats is the lifetime tally plus a rolling window of per-day counts.
type Stats struct {
	TotalDhikr  int            `json:"totalDhikr"`
	DailyStats  map[string]int `json:"dailyStats"`
	LastUpdated string         `json:"lastUpdated"`
}

type DayCount struct {
	Date  string
	Count int
}

func NewStats(now time.Time) Stats {
	return Stats{
		DailyStats:  make(map[string]int),
		LastUpdated: DateKey(now),
	}
}

func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// RetentionCutoff is the oldest date key kept in DailyStats.
func RetentionCutoff(now time.Time) string {
	return DateKey(now.AddDate(0, 0, -StatsRetentionDays))
}

func (s *Stats) Add(now time.Time, delta int) {
	if s.DailyStats == nil {
		s.DailyStats = make(map[string]int)
	}
	today := DateKey(now)
	s.TotalDhikr += delta
	s.DailyStats[today] += delta
	s.LastUpdated = today
}

// Prune drops daily entries older than the retention window. Keys are
// compared as strings, which orders ISO dates chronologically.
func (s *Stats) Prune(now time.Time) {
	cutoff := RetentionCutoff(now)
	for day := range s.DailyStats {
		if day < cutoff {
			delete(s.DailyStats, day)
		}
	}
}

func (s Stats) Today(now time.Time) int {
	return s.DailyStats[DateKey(now)]
}

// LastNDays returns the n most recent days ending today, oldest first,
// with zero counts for days without activity.
func (s Stats) LastNDays(now time.Time, n int) []DayCount {
	if n <= 0 {
		return []DayCount{}
	}
	out := make([]DayCount, 0, n)
	for i := n - 1; i >= 0; i-- {
		day := DateKey(now.AddDate(0, 0, -i))
		out = append(out, DayCount{Date: day, Count: s.DailyStats[day]})
	}
	return out
}

func (s Stats) WeekTotal(now time.Time) int {
	total := 0
	for _, d := range s.LastNDays(now, 7) {
		total += d.Count
	}
	return total
}

// Days lists the recorded days in chronological order.
func (s Stats) Days() []DayCount {
	keys := make([]string, 0, len(s.DailyStats))
	for k := range s.DailyStats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]DayCount, 0, len(keys))
	for _, k := range keys {
		out = append(out, DayCount{Date: k, Count: s.DailyStats[k]})
	}
	return out
}
