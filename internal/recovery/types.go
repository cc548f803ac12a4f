package recovery

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// Zone-less layouts are read in local time, like the browser's Date parser.
var localTimestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

type FrequencyPeriod string

const (
	PeriodDay   FrequencyPeriod = "day"
	PeriodWeek  FrequencyPeriod = "week"
	PeriodMonth FrequencyPeriod = "month"
)

func (p FrequencyPeriod) IsValid() bool {
	switch p {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return true
	}
	return false
}

type Mood string

const (
	MoodGreat       Mood = "great"
	MoodGood        Mood = "good"
	MoodNormal      Mood = "normal"
	MoodCalm        Mood = "calm"
	MoodAnxious     Mood = "anxious"
	MoodVeryAnxious Mood = "very-anxious"
	MoodIrritated   Mood = "irritated"
)

var ValidMoods = map[Mood]string{
	MoodGreat:       "Great",
	MoodGood:        "Good",
	MoodNormal:      "Normal",
	MoodCalm:        "Calm",
	MoodAnxious:     "Anxious",
	MoodVeryAnxious: "Very anxious",
	MoodIrritated:   "Irritated",
}

func (m Mood) IsValid() bool {
	_, ok := ValidMoods[m]
	return ok
}

func (m Mood) IsPositive() bool {
	return m == MoodGreat || m == MoodGood || m == MoodCalm
}

func (m Mood) IsNegative() bool {
	return m == MoodAnxious || m == MoodVeryAnxious || m == MoodIrritated
}

func (m Mood) IsAnxious() bool {
	return m == MoodAnxious || m == MoodVeryAnxious
}

// Profile is the persisted user record. Field names follow the stored JSON
// document so snapshots from the browser app load unchanged.
type Profile struct {
	StartDate       time.Time       `json:"startDate"`
	LastRelapseDate *time.Time      `json:"lastRelapseDate"`
	TotalRelapses   int             `json:"totalRelapses"`
	Currency        string          `json:"currency"`
	DailyCost       float64         `json:"dailyCost"`
	GramsPerUse     float64         `json:"gramsPerJoint"`
	THCPotency      float64         `json:"thcPotency"`
	PricePerGram    float64         `json:"pricePerGram"`
	FrequencyAmount float64         `json:"frequencyAmount"`
	FrequencyPeriod FrequencyPeriod `json:"frequencyPeriod"`
	RelapseHistory  []RelapseEvent  `json:"relapseHistory"`

	OnboardingCompleted bool `json:"onboardingCompleted"`
	// XP seeds the gamification state the first time it is loaded.
	XP int `json:"xp"`
}

// UnmarshalJSON reads startDate and lastRelapseDate with ParseTimestamp so
// zone-less onboarding timestamps decode.
func (p *Profile) UnmarshalJSON(data []byte) error {
	type plain Profile
	aux := struct {
		*plain
		StartDate       string  `json:"startDate"`
		LastRelapseDate *string `json:"lastRelapseDate"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	p.StartDate = time.Time{}
	if aux.StartDate != "" {
		t, err := ParseTimestamp(aux.StartDate)
		if err != nil {
			return fmt.Errorf("startDate: %w", err)
		}
		p.StartDate = t
	}
	p.LastRelapseDate = nil
	if aux.LastRelapseDate != nil && *aux.LastRelapseDate != "" {
		t, err := ParseTimestamp(*aux.LastRelapseDate)
		if err != nil {
			return fmt.Errorf("lastRelapseDate: %w", err)
		}
		p.LastRelapseDate = &t
	}
	return nil
}

// ParseTimestamp accepts RFC3339, zone-less "YYYY-MM-DDTHH:MM[:SS]" in local
// time and a bare "YYYY-MM-DD" at UTC midnight.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range localTimestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// RelapseEvent is append-only. Date is the UTC calendar day and Time the
// local wall-clock time.
type RelapseEvent struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Notes   string `json:"notes,omitempty"`
	Mood    string `json:"mood,omitempty"`
	Trigger string `json:"trigger,omitempty"`
}

type MoodEntry struct {
	ID    string `json:"id"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Mood  Mood   `json:"mood"`
	Notes string `json:"notes,omitempty"`
}

// ReferenceTime is the instant clean time is measured from.
func (p *Profile) ReferenceTime() time.Time {
	if p.LastRelapseDate != nil {
		return *p.LastRelapseDate
	}
	return p.StartDate
}

// ParseHour returns the hour component of an "HH:MM[:SS]" string.
func ParseHour(s string) (int, bool) {
	s = strings.TrimSpace(s)
	head, _, _ := strings.Cut(s, ":")
	if head == "" {
		return 0, false
	}
	hour, err := strconv.Atoi(head)
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	return hour, true
}

// ParseDate parses a "YYYY-MM-DD" date at UTC midnight. Full RFC3339
// timestamps are accepted too since older snapshots stored those.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Stamp splits an instant into the stored date and time strings: the UTC
// calendar day and the wall-clock time in t's own location.
func Stamp(t time.Time) (date, clock string) {
	return t.UTC().Format(DateLayout), t.Format(TimeLayout)
}
