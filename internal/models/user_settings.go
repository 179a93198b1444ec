// Package models provides data structures and operations for the boorubot
// backend. This file contains per-user search preferences: tags that are
// automatically appended to every search and named query modifiers that can
// be toggled on and off.
package models

import (
	"sort"
	"strings"
	"time"
)

// UserSettings represents one user's stored search preferences.
//
// AutoTags keeps insertion order and forbids duplicates so that query
// composition is reproducible. ToggleRules maps a rule string (for example
// "rating:safe") to its enabled state.
type UserSettings struct {
	// UserID references the user who owns these settings.
	UserID int64 `json:"user_id" db:"user_id"`

	// AutoTags are appended to every search, in insertion order.
	AutoTags []string `json:"auto_tags" db:"auto_tags"`

	// ToggleRules maps rule strings to their enabled state. Enabled rules
	// are appended to every search.
	ToggleRules map[string]bool `json:"toggle_rules" db:"toggle_rules"`

	// CreatedAt records when these settings were first persisted.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt records when these settings were last modified.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewUserSettings creates settings with empty defaults for a user. The slice
// and map are always allocated so callers never deal with nil collections.
func NewUserSettings(userID int64) *UserSettings {
	now := time.Now()
	return &UserSettings{
		UserID:      userID,
		AutoTags:    []string{},
		ToggleRules: map[string]bool{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// HasAutoTag reports whether the tag is already present.
func (s *UserSettings) HasAutoTag(tag string) bool {
	for _, t := range s.AutoTags {
		if t == tag {
			return true
		}
	}
	return false
}

// AddAutoTag appends a tag, refusing duplicates. Returns false if the tag
// was already present.
func (s *UserSettings) AddAutoTag(tag string) bool {
	if s.HasAutoTag(tag) {
		return false
	}
	s.AutoTags = append(s.AutoTags, tag)
	s.UpdatedAt = time.Now()
	return true
}

// RemoveAutoTag removes a tag by value. Returns false if the tag was not
// present.
func (s *UserSettings) RemoveAutoTag(tag string) bool {
	for i, t := range s.AutoTags {
		if t == tag {
			s.AutoTags = append(s.AutoTags[:i], s.AutoTags[i+1:]...)
			s.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

// RemoveAutoTagAt removes a tag by index. Returns the removed tag and false
// if the index is out of range.
func (s *UserSettings) RemoveAutoTagAt(index int) (string, bool) {
	if index < 0 || index >= len(s.AutoTags) {
		return "", false
	}
	removed := s.AutoTags[index]
	s.AutoTags = append(s.AutoTags[:index], s.AutoTags[index+1:]...)
	s.UpdatedAt = time.Now()
	return removed, true
}

// Toggle flips a rule's enabled state, creating it as enabled if absent.
// Returns the new state.
func (s *UserSettings) Toggle(rule string) bool {
	newState := !s.ToggleRules[rule]
	s.ToggleRules[rule] = newState
	s.UpdatedAt = time.Now()
	return newState
}

// SetRule sets a rule to a specific state.
func (s *UserSettings) SetRule(rule string, enabled bool) {
	s.ToggleRules[rule] = enabled
	s.UpdatedAt = time.Now()
}

// EnabledRules returns the enabled rule strings in sorted order. Map
// iteration order is unstable, so rules are sorted to keep query
// composition reproducible.
func (s *UserSettings) EnabledRules() []string {
	rules := make([]string, 0, len(s.ToggleRules))
	for rule, enabled := range s.ToggleRules {
		if enabled {
			rules = append(rules, rule)
		}
	}
	sort.Strings(rules)
	return rules
}

// ComposeQuery merges a raw query with the stored preferences into the
// final tag string: base query, then auto tags in insertion order, then
// enabled toggle rules, joined by single spaces and trimmed.
func (s *UserSettings) ComposeQuery(baseQuery string) string {
	parts := make([]string, 0, 2+len(s.AutoTags))
	if baseQuery != "" {
		parts = append(parts, baseQuery)
	}
	parts = append(parts, s.AutoTags...)
	parts = append(parts, s.EnabledRules()...)
	return strings.TrimSpace(strings.Join(parts, " "))
}
