// Package tagset tracks the tags attached to an issue form.
//
// Tags come from two places: the user types them in (manual tags), or
// they are derived from the test-case path (the auto tag, a bucket name).
// A name lives in at most one of the two sets, and the auto tag always
// serializes ahead of the manual tags so the derived bucket stays primary.
package tagset

import "strings"

// Set holds the ordered manual tags and the single derived auto tag for
// one issue form. The zero value is ready to use.
type Set struct {
	auto   []string
	manual []string
}

// New returns an empty tag set.
func New() *Set {
	return &Set{}
}

// AddManual appends a user-entered tag. Empty (after trimming) and
// duplicate names are ignored; a name already held as the auto tag is
// not added again.
func (s *Set) AddManual(name string) {
	name = strings.TrimSpace(name)
	if name == "" || s.contains(name) {
		return
	}
	s.manual = append(s.manual, name)
}

// RemoveManual removes a user-entered tag. Auto tags cannot be removed
// this way: if name is currently the auto tag, the call is a no-op.
func (s *Set) RemoveManual(name string) {
	for _, a := range s.auto {
		if a == name {
			return
		}
	}
	s.manual = remove(s.manual, name)
}

// SetAuto replaces the derived auto tag. Any previous auto tag is
// dropped first, and a manual duplicate of the incoming name is removed
// so the sets stay disjoint. An empty name clears the auto tag.
func (s *Set) SetAuto(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		s.auto = nil
		return
	}
	if len(s.auto) == 1 && s.auto[0] == name {
		return
	}
	s.manual = remove(s.manual, name)
	s.auto = []string{name}
}

// Auto returns the current auto tag, or "" when none is set.
func (s *Set) Auto() string {
	if len(s.auto) == 0 {
		return ""
	}
	return s.auto[0]
}

// Manual returns the manual tags in insertion order.
func (s *Set) Manual() []string {
	out := make([]string, len(s.manual))
	copy(out, s.manual)
	return out
}

// All returns auto tags followed by manual tags, in serialization order.
func (s *Set) All() []string {
	out := make([]string, 0, len(s.auto)+len(s.manual))
	out = append(out, s.auto...)
	out = append(out, s.manual...)
	return out
}

// Serialize joins all tags with commas, auto tag first. This is the
// wire form submitted with the issue.
func (s *Set) Serialize() string {
	return strings.Join(s.All(), ",")
}

func (s *Set) contains(name string) bool {
	for _, t := range s.auto {
		if t == name {
			return true
		}
	}
	for _, t := range s.manual {
		if t == name {
			return true
		}
	}
	return false
}

func remove(tags []string, name string) []string {
	out := tags[:0]
	for _, t := range tags {
		if t != name {
			out = append(out, t)
		}
	}
	return out
}
