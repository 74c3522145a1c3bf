package expr

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const (
	datetimePrefix = "datetime("
	datetimeSuffix = ")"
)

// Failure reasons reported by ParseDateTime and ParseDuration.
const (
	ReasonInvalidSyntax    = "Invalid datetime function syntax"
	ReasonArgumentCount    = "datetime() requires 1 or 2 arguments"
	ReasonInvalidFirstArg  = "Invalid first argument"
	ReasonEmptyDuration    = "Empty duration string"
	ReasonDurationShape    = "Duration must contain a number and a unit"
	ReasonInvalidDuration  = "Invalid duration value"
	ReasonInvalidUnit      = "Invalid duration unit"
	ReasonInvalidTimestamp = "Invalid timestamp"
)

// SyntaxError describes why an expression could not be parsed.
type SyntaxError struct {
	Expression string
	Reason     string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Expression)
}

// DurationUnit is the calendar unit of a Duration.
type DurationUnit string

const (
	UnitMinutes DurationUnit = "minutes"
	UnitHours   DurationUnit = "hours"
	UnitDays    DurationUnit = "days"
	UnitWeeks   DurationUnit = "weeks"
	UnitMonths  DurationUnit = "months"
	UnitYears   DurationUnit = "years"
)

var unitAliases = map[string]DurationUnit{
	"minute": UnitMinutes, "minutes": UnitMinutes, "min": UnitMinutes, "mins": UnitMinutes,
	"hour": UnitHours, "hours": UnitHours, "hr": UnitHours, "hrs": UnitHours,
	"day": UnitDays, "days": UnitDays,
	"week": UnitWeeks, "weeks": UnitWeeks,
	"month": UnitMonths, "months": UnitMonths,
	"year": UnitYears, "years": UnitYears,
}

// Duration is a signed count of calendar units, such as "-2 hours".
type Duration struct {
	Value int64
	Unit  DurationUnit
}

// String renders the duration in canonical form.
func (d Duration) String() string {
	return fmt.Sprintf("%d %s", d.Value, d.Unit)
}

// AddTo returns t shifted by d. Days and larger units follow calendar arithmetic.
func (d Duration) AddTo(t time.Time) time.Time {
	n := int(d.Value)
	switch d.Unit {
	case UnitMinutes:
		return t.Add(time.Duration(d.Value) * time.Minute)
	case UnitHours:
		return t.Add(time.Duration(d.Value) * time.Hour)
	case UnitDays:
		return t.AddDate(0, 0, n)
	case UnitWeeks:
		return t.AddDate(0, 0, 7*n)
	case UnitMonths:
		return t.AddDate(0, n, 0)
	case UnitYears:
		return t.AddDate(n, 0, 0)
	}
	return t
}

// ParseDuration parses "<signed integer> <unit>", optionally quoted.
func ParseDuration(text string) (Duration, error) {
	trimmed := trimQuotes(strings.TrimSpace(text))
	parts := strings.Fields(trimmed)
	if len(parts) != 2 {
		return Duration{}, &SyntaxError{Expression: text, Reason: ReasonDurationShape}
	}

	value, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Duration{}, &SyntaxError{Expression: text, Reason: ReasonInvalidDuration}
	}

	unit, ok := unitAliases[strings.ToLower(parts[1])]
	if !ok {
		return Duration{}, &SyntaxError{Expression: text, Reason: ReasonInvalidUnit}
	}

	return Duration{Value: value, Unit: unit}, nil
}

// DateTime is a parsed datetime() call.
type DateTime struct {
	// Now is true for datetime(now, ...). Otherwise Timestamp holds the
	// unquoted anchor text.
	Now       bool
	Timestamp string

	// Offset is nil when no duration argument was given.
	Offset *Duration
}

// IsDateTimeExpression reports whether text is meant to be a datetime() call.
func IsDateTimeExpression(text string) bool {
	return strings.HasPrefix(text, datetimePrefix)
}

// ParseDateTime parses datetime(<now|'timestamp'>[, '<duration>']).
// The timestamp text is not interpreted here; see DateTime.Resolve.
func ParseDateTime(text string) (DateTime, error) {
	fail := func(reason string) (DateTime, error) {
		return DateTime{}, &SyntaxError{Expression: text, Reason: reason}
	}

	if !strings.HasPrefix(text, datetimePrefix) || !strings.HasSuffix(text, datetimeSuffix) ||
		len(text) < len(datetimePrefix)+len(datetimeSuffix) {
		return fail(ReasonInvalidSyntax)
	}

	inner := text[len(datetimePrefix) : len(text)-len(datetimeSuffix)]
	args := strings.Split(inner, ",")
	for i := range args {
		args[i] = strings.TrimSpace(args[i])
	}
	if len(args) > 2 {
		return fail(ReasonArgumentCount)
	}

	var dt DateTime
	switch first := args[0]; {
	case first == "now":
		dt.Now = true
	case strings.HasPrefix(first, "'") || strings.HasPrefix(first, `"`):
		dt.Timestamp = trimQuotes(first)
	default:
		return fail(ReasonInvalidFirstArg)
	}

	if len(args) == 2 {
		raw := trimQuotes(args[1])
		if raw == "" {
			return fail(ReasonEmptyDuration)
		}
		d, err := ParseDuration(raw)
		if err != nil {
			return fail(err.(*SyntaxError).Reason)
		}
		dt.Offset = &d
	}

	return dt, nil
}

// Resolve computes the absolute instant relative to now.
func (dt DateTime) Resolve(now time.Time) (time.Time, error) {
	base := now
	if !dt.Now {
		t, err := ParseTimestamp(dt.Timestamp)
		if err != nil {
			return time.Time{}, err
		}
		base = t
	}
	if dt.Offset != nil {
		base = dt.Offset.AddTo(base)
	}
	return base, nil
}

// String renders the call in canonical form.
func (dt DateTime) String() string {
	anchor := "now"
	if !dt.Now {
		anchor = "'" + dt.Timestamp + "'"
	}
	if dt.Offset == nil {
		return datetimePrefix + anchor + datetimeSuffix
	}
	return fmt.Sprintf("%s%s, '%s'%s", datetimePrefix, anchor, dt.Offset, datetimeSuffix)
}

// ParseTimestamp parses an absolute calendar timestamp in any of the common
// layouts (RFC 3339, ISO dates, US dates, unix seconds). Results are in UTC
// unless the text carries its own zone.
func ParseTimestamp(text string) (time.Time, error) {
	t, err := dateparse.ParseIn(strings.TrimSpace(text), time.UTC)
	if err != nil {
		return time.Time{}, &SyntaxError{Expression: text, Reason: ReasonInvalidTimestamp}
	}
	return t, nil
}

func trimQuotes(s string) string {
	return strings.Trim(strings.Trim(s, "'"), `"`)
}
