// Package schedule turns the workflow's wall-clock times ("08:00") into cron
// schedules so they can be validated at load time and reported as concrete
// next-run instants. Nothing in this package triggers work.
package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// ErrNoTimes is returned when a plan is built from an empty list.
var ErrNoTimes = errors.New("at least one clock time is required")

// Clock is a time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses a 24-hour "HH:MM" string.
func ParseClock(raw string) (Clock, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok {
		return Clock{}, fmt.Errorf("invalid clock time %q: expected HH:MM", raw)
	}

	hour, err := strconv.Atoi(hh)
	if err != nil || len(hh) != 2 || hour < 0 || hour > 23 {
		return Clock{}, fmt.Errorf("invalid clock time %q: hour must be 00-23", raw)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || len(mm) != 2 || minute < 0 || minute > 59 {
		return Clock{}, fmt.Errorf("invalid clock time %q: minute must be 00-59", raw)
	}

	return Clock{Hour: hour, Minute: minute}, nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// CronSpec renders the clock as a standard five-field daily cron expression.
func (c Clock) CronSpec() string {
	return fmt.Sprintf("%d %d * * *", c.Minute, c.Hour)
}

// Plan is a set of daily fire times evaluated in one location.
type Plan struct {
	clocks    []Clock
	schedules []cron.Schedule
	location  *time.Location
}

// NewPlan parses every clock time and compiles it into a cron schedule bound
// to timezone. An empty timezone means UTC.
func NewPlan(times []string, timezone string) (*Plan, error) {
	if len(times) == 0 {
		return nil, ErrNoTimes
	}
	if timezone == "" {
		timezone = "UTC"
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone '%s': %w", timezone, err)
	}

	plan := &Plan{location: loc}
	for _, raw := range times {
		clock, err := ParseClock(raw)
		if err != nil {
			return nil, err
		}
		sched, err := cron.ParseStandard("CRON_TZ=" + timezone + " " + clock.CronSpec())
		if err != nil {
			return nil, fmt.Errorf("invalid cron schedule '%s': %w", clock.CronSpec(), err)
		}
		plan.clocks = append(plan.clocks, clock)
		plan.schedules = append(plan.schedules, sched)
	}

	return plan, nil
}

// Next returns the earliest fire time strictly after the given instant.
func (p *Plan) Next(after time.Time) time.Time {
	var next time.Time
	for _, sched := range p.schedules {
		candidate := sched.Next(after)
		if next.IsZero() || candidate.Before(next) {
			next = candidate
		}
	}
	return next
}

// Clocks returns the parsed clock times in input order.
func (p *Plan) Clocks() []Clock {
	out := make([]Clock, len(p.clocks))
	copy(out, p.clocks)
	return out
}

// Location returns the timezone the plan is evaluated in.
func (p *Plan) Location() *time.Location {
	return p.location
}
