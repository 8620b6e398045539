// Package timeofday resolves 12-hour clock strings like "8:00 AM" into the
// next wall-clock instant at which they occur.
package timeofday

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// pattern matches "H:MM AM" / "HH:MM pm": 1-2 digit hour, exactly 2-digit
// minute, case-insensitive meridiem separated by a single space.
var pattern = regexp.MustCompile(`^(\d{1,2}):(\d{2}) (?i:(AM|PM))$`)

// Parser resolves time-of-day strings against a reference location.
type Parser struct {
	loc *time.Location
	now func() time.Time
}

// Option configures a Parser.
type Option func(*Parser)

// WithNow overrides the clock used to decide today-vs-tomorrow. Used by tests.
func WithNow(now func() time.Time) Option {
	return func(p *Parser) { p.now = now }
}

// NewParser creates a parser resolving instants in loc. A nil loc means UTC.
func NewParser(loc *time.Location, opts ...Option) *Parser {
	if loc == nil {
		loc = time.UTC
	}
	p := &Parser{loc: loc, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Next parses s and returns the next instant at that hour and minute: today
// if the time is still ahead of the clock, otherwise tomorrow. An instant
// exactly equal to now counts as already passed and resolves to tomorrow.
// Malformed input returns an error and the zero time; callers must treat
// that as a failure, never substitute a default.
func (p *Parser) Next(s string) (time.Time, error) {
	m := pattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return time.Time{}, fmt.Errorf("invalid time of day %q (want H:MM AM|PM)", s)
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute, err := strconv.Atoi(m[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if hour < 1 || hour > 12 {
		return time.Time{}, fmt.Errorf("hour out of range in %q (want 1-12)", s)
	}
	if minute > 59 {
		return time.Time{}, fmt.Errorf("minute out of range in %q (want 00-59)", s)
	}

	// 12-hour to 24-hour: 12 AM is hour 0, 12 PM stays 12, other PM hours
	// add 12.
	meridiem := strings.ToUpper(m[3])
	if meridiem == "AM" && hour == 12 {
		hour = 0
	} else if meridiem == "PM" && hour != 12 {
		hour += 12
	}

	now := p.now().In(p.loc)
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, p.loc)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next, nil
}
