package models

import (
	"fmt"
	"strconv"
	"strings"
)

// AllValue is the selector value that means "no restriction"
const AllValue = "all"

// Selector is a single-value filter that is either unrestricted (Any) or
// restricted to one value (Only). Any is distinct from Only of a zero value,
// so Only("") still only matches the empty string.
type Selector[T comparable] struct {
	value T
	set   bool
}

// Any returns an unrestricted selector
func Any[T comparable]() Selector[T] {
	return Selector[T]{}
}

// Only returns a selector restricted to v
func Only[T comparable](v T) Selector[T] {
	return Selector[T]{value: v, set: true}
}

// IsAny reports whether the selector is unrestricted
func (s Selector[T]) IsAny() bool {
	return !s.set
}

// Value returns the selected value and whether one is set
func (s Selector[T]) Value() (T, bool) {
	return s.value, s.set
}

// Matches reports whether v passes the selector
func (s Selector[T]) Matches(v T) bool {
	return !s.set || s.value == v
}

// String renders the selector as its value, or "all" when unrestricted
func (s Selector[T]) String() string {
	if !s.set {
		return AllValue
	}
	return fmt.Sprint(s.value)
}

// Key renders the selector unambiguously for cache keys: "*" when
// unrestricted, otherwise "=" followed by the quoted value.
func (s Selector[T]) Key() string {
	if !s.set {
		return "*"
	}
	return fmt.Sprintf("=%q", fmt.Sprint(s.value))
}

// isUnset reports whether a raw input value means "no restriction"
func isUnset(raw string) bool {
	raw = strings.TrimSpace(raw)
	return raw == "" || strings.EqualFold(raw, AllValue)
}

// ParseSelector converts a raw input value into a string selector.
// "" and "all" yield Any.
func ParseSelector(raw string) Selector[string] {
	if isUnset(raw) {
		return Any[string]()
	}
	return Only(strings.TrimSpace(raw))
}

// ParseProjectStatus converts a raw input value into a project status selector
func ParseProjectStatus(raw string) (Selector[ProjectStatus], error) {
	if isUnset(raw) {
		return Any[ProjectStatus](), nil
	}
	status := ProjectStatus(strings.TrimSpace(raw))
	if !status.IsValid() {
		return Selector[ProjectStatus]{}, NewValidationError("status", fmt.Sprintf("unknown project status %q", raw))
	}
	return Only(status), nil
}

// ParseEnrollmentStatus converts a raw input value into an enrollment status selector
func ParseEnrollmentStatus(raw string) (Selector[EnrollmentStatus], error) {
	if isUnset(raw) {
		return Any[EnrollmentStatus](), nil
	}
	status := EnrollmentStatus(strings.TrimSpace(raw))
	if !status.IsValid() {
		return Selector[EnrollmentStatus]{}, NewValidationError("status", fmt.Sprintf("unknown enrollment status %q", raw))
	}
	return Only(status), nil
}

// ParseYear converts a raw input value into a year selector
func ParseYear(raw string) (Selector[int], error) {
	if isUnset(raw) {
		return Any[int](), nil
	}
	year, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || year < 1 || year > 9999 {
		return Selector[int]{}, NewValidationError("year", fmt.Sprintf("invalid year %q", raw))
	}
	return Only(year), nil
}
