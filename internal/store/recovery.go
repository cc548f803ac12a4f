package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/strrl/cleantime/internal/progress"
	"github.com/strrl/cleantime/internal/recovery"
)

// Init stores a fresh profile, replacing any previous one.
func (s *Store) Init(ctx context.Context, p recovery.Profile) error {
	normalizeProfile(&p)
	p.OnboardingCompleted = true
	if err := s.Set(ctx, KeyProfile, p); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	s.log.Info("profile initialized", "start", p.StartDate, "period", p.FrequencyPeriod)
	return nil
}

func (s *Store) LoadProfile(ctx context.Context) (recovery.Profile, error) {
	return loadProfile(ctx, s.db)
}

func loadProfile(ctx context.Context, q querier) (recovery.Profile, error) {
	var p recovery.Profile
	if err := get(ctx, q, KeyProfile, &p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return recovery.Profile{}, ErrNoProfile
		}
		return recovery.Profile{}, err
	}
	normalizeProfile(&p)
	return p, nil
}

// Absent numbers decode as zero already; only collections and the period
// need filling in.
func normalizeProfile(p *recovery.Profile) {
	if p.RelapseHistory == nil {
		p.RelapseHistory = []recovery.RelapseEvent{}
	}
	if !p.FrequencyPeriod.IsValid() {
		p.FrequencyPeriod = recovery.PeriodDay
	}
}

type RelapseInput struct {
	Notes   string
	Mood    string
	Trigger string
}

// RegisterRelapse appends a relapse at now, restarts the clean-time counter
// and clears unlocked achievements.
func (s *Store) RegisterRelapse(ctx context.Context, in RelapseInput, now time.Time) (recovery.RelapseEvent, error) {
	date, clock := recovery.Stamp(now)
	event := recovery.RelapseEvent{
		ID:      s.newID(),
		Date:    date,
		Time:    clock,
		Notes:   strings.TrimSpace(in.Notes),
		Mood:    strings.TrimSpace(in.Mood),
		Trigger: strings.TrimSpace(in.Trigger),
	}

	err := s.withTx(ctx, func(q querier) error {
		p, err := loadProfile(ctx, q)
		if err != nil {
			return err
		}
		p.RelapseHistory = append(p.RelapseHistory, event)
		at := now
		p.LastRelapseDate = &at
		p.TotalRelapses++
		if err := set(ctx, q, KeyProfile, p); err != nil {
			return err
		}

		st, err := loadProgress(ctx, q)
		if err != nil {
			return err
		}
		return set(ctx, q, KeyProgress, progress.ResetAchievements(st))
	})
	if err != nil {
		return recovery.RelapseEvent{}, fmt.Errorf("failed to register relapse: %w", err)
	}

	s.log.Info("relapse registered", "id", event.ID, "trigger", event.Trigger, "notes", event.Notes)
	return event, nil
}

// LoadMoods returns mood entries most recent first.
func (s *Store) LoadMoods(ctx context.Context) ([]recovery.MoodEntry, error) {
	return loadMoods(ctx, s.db)
}

func loadMoods(ctx context.Context, q querier) ([]recovery.MoodEntry, error) {
	var entries []recovery.MoodEntry
	if err := get(ctx, q, KeyMoods, &entries); err != nil {
		if errors.Is(err, ErrNotFound) {
			return []recovery.MoodEntry{}, nil
		}
		return nil, err
	}
	return entries, nil
}

func (s *Store) AddMood(ctx context.Context, mood recovery.Mood, notes string, now time.Time) (recovery.MoodEntry, error) {
	if !mood.IsValid() {
		return recovery.MoodEntry{}, fmt.Errorf("%w: %q", ErrInvalidMood, mood)
	}
	date, clock := recovery.Stamp(now)
	entry := recovery.MoodEntry{
		ID:    s.newID(),
		Date:  date,
		Time:  clock,
		Mood:  mood,
		Notes: strings.TrimSpace(notes),
	}

	err := s.withTx(ctx, func(q querier) error {
		entries, err := loadMoods(ctx, q)
		if err != nil {
			return err
		}
		entries = append([]recovery.MoodEntry{entry}, entries...)
		return set(ctx, q, KeyMoods, entries)
	})
	if err != nil {
		return recovery.MoodEntry{}, fmt.Errorf("failed to add mood: %w", err)
	}

	s.log.Debug("mood logged", "id", entry.ID, "mood", entry.Mood, "notes", entry.Notes)
	return entry, nil
}

// LoadProgress returns the gamification state. Before the first save it is
// seeded from the XP carried on the profile.
func (s *Store) LoadProgress(ctx context.Context) (progress.State, error) {
	return loadProgress(ctx, s.db)
}

func loadProgress(ctx context.Context, q querier) (progress.State, error) {
	var st progress.State
	err := get(ctx, q, KeyProgress, &st)
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return progress.State{}, err
	}

	p, err := loadProfile(ctx, q)
	if errors.Is(err, ErrNoProfile) {
		return progress.State{}, nil
	}
	if err != nil {
		return progress.State{}, err
	}
	return progress.State{XP: p.XP}, nil
}

// SaveProgress stores st and mirrors its XP onto the profile, if any.
func (s *Store) SaveProgress(ctx context.Context, st progress.State) error {
	err := s.withTx(ctx, func(q querier) error {
		if err := set(ctx, q, KeyProgress, st); err != nil {
			return err
		}
		p, err := loadProfile(ctx, q)
		if errors.Is(err, ErrNoProfile) {
			return nil
		}
		if err != nil {
			return err
		}
		p.XP = st.XP
		return set(ctx, q, KeyProfile, p)
	})
	if err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	s.log.Debug("progress saved", "xp", st.XP, "level", progress.Level(st.XP))
	return nil
}
