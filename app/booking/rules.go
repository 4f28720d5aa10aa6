package booking

import (
	"fmt"
	"time"
)

// RuleKind identifies which booking rule a candidate violated.
type RuleKind string

const (
	RuleMissingTime    RuleKind = "missing_time"
	RuleEndBeforeStart RuleKind = "end_before_start"
	RuleMinDuration    RuleKind = "min_duration"
	RuleEndsTooLate    RuleKind = "ends_too_late"
	RuleInPast         RuleKind = "in_past"
	RuleWeekendsClosed RuleKind = "weekends_closed"
)

// RuleError is returned by Policy.Validate. Message is safe to show to
// the end user as-is.
type RuleError struct {
	Kind    RuleKind
	Message string
}

func (e *RuleError) Error() string { return e.Message }

// Policy is the booking rule set. The single-room and room-aware
// deployments only differ by configuration: the single-room variant
// runs with LatestEnd = 0 and WeekdaysOnly = false.
type Policy struct {
	// MinDuration is the shortest allowed reservation.
	MinDuration time.Duration
	// LatestEnd is the latest allowed end time, in minutes from
	// midnight. Zero disables the rule.
	LatestEnd int
	// WeekdaysOnly rejects reservations starting on Saturday or Sunday.
	WeekdaysOnly bool
}

func DefaultPolicy() Policy {
	return Policy{
		MinDuration:  time.Hour,
		LatestEnd:    19 * 60,
		WeekdaysOnly: true,
	}
}

// Validate checks a candidate [start, end) window against the policy.
// Rules are applied in a fixed order and the first violation is
// returned. These are global invariants: no caller role may skip them.
func (p Policy) Validate(start, end, now time.Time) error {
	if start.IsZero() || end.IsZero() {
		return &RuleError{Kind: RuleMissingTime, Message: "start and end are required"}
	}
	if !start.Before(end) {
		return &RuleError{Kind: RuleEndBeforeStart, Message: "end must be after start"}
	}
	if end.Sub(start) < p.MinDuration {
		return &RuleError{
			Kind:    RuleMinDuration,
			Message: fmt.Sprintf("minimum duration is %d minutes", int(p.MinDuration.Minutes())),
		}
	}
	if p.LatestEnd > 0 {
		minuteOfDay := end.Hour()*60 + end.Minute()
		if minuteOfDay > p.LatestEnd || (minuteOfDay == p.LatestEnd && end.Second() > 0) {
			return &RuleError{
				Kind:    RuleEndsTooLate,
				Message: fmt.Sprintf("reservations must end by %02d:%02d", p.LatestEnd/60, p.LatestEnd%60),
			}
		}
	}
	if !start.After(now) {
		return &RuleError{Kind: RuleInPast, Message: "cannot book in the past"}
	}
	if p.WeekdaysOnly {
		if wd := start.Weekday(); wd == time.Saturday || wd == time.Sunday {
			return &RuleError{Kind: RuleWeekendsClosed, Message: "reservations are only allowed on weekdays"}
		}
	}
	return nil
}
