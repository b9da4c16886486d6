package reconciliation

import (
	"fmt"
	"strings"
	"time"

	"github.com/cobranza/backend/internal/domain/shared"
)

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// DefaultTimezone is the operating timezone of the collection business
const DefaultTimezone = "America/Mexico_City"

// Kind distinguishes daily from weekly reconciliation periods
type Kind string

const (
	KindDaily  Kind = "daily"
	KindWeekly Kind = "weekly"
)

// Mode selects how the end of a resolved window is chosen
type Mode int

const (
	// ModeOpen ends the window at the current instant (pre-cuts)
	ModeOpen Mode = iota
	// ModeFinal ends the window at the local day or week boundary
	ModeFinal
)

// Window is a half-open interval [Start, End) of UTC instants
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewWindow builds a window with both bounds normalised to UTC
func NewWindow(start, end time.Time) Window {
	return Window{Start: start.UTC(), End: end.UTC()}
}

// IsEmpty reports whether the window contains no instant
func (w Window) IsEmpty() bool {
	return !w.Start.Before(w.End)
}

// Contains reports whether t falls inside the window
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// ContainsWindow reports whether other lies entirely inside w
func (w Window) ContainsWindow(other Window) bool {
	return !other.Start.Before(w.Start) && !other.End.After(w.End)
}

// Overlaps reports whether two windows share at least one instant
func (w Window) Overlaps(other Window) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}

// LocalDate is a calendar date in the operating timezone
type LocalDate struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseLocalDate parses a YYYY-MM-DD date
func ParseLocalDate(s string) (LocalDate, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return LocalDate{}, shared.NewInvalidDateError("invalid date %q, expected YYYY-MM-DD", s)
	}
	return LocalDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// LocalDateOf returns the calendar date of t in loc
func LocalDateOf(t time.Time, loc *time.Location) LocalDate {
	lt := t.In(loc)
	return LocalDate{Year: lt.Year(), Month: lt.Month(), Day: lt.Day()}
}

// String formats the date as YYYY-MM-DD
func (d LocalDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// IsZero reports whether the date is unset
func (d LocalDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Midnight returns the first instant of the date in loc
func (d LocalDate) Midnight(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays returns the date n calendar days later
func (d LocalDate) AddDays(n int) LocalDate {
	t := time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC)
	return LocalDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Weekday returns the day of the week
func (d LocalDate) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

// Before reports whether d is strictly earlier than other
func (d LocalDate) Before(other LocalDate) bool {
	return d.compare(other) < 0
}

// After reports whether d is strictly later than other
func (d LocalDate) After(other LocalDate) bool {
	return d.compare(other) > 0
}

func (d LocalDate) compare(other LocalDate) int {
	switch {
	case d.Year != other.Year:
		return d.Year - other.Year
	case d.Month != other.Month:
		return int(d.Month) - int(other.Month)
	default:
		return d.Day - other.Day
	}
}

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "domingo": time.Sunday,
	"monday": time.Monday, "lunes": time.Monday,
	"tuesday": time.Tuesday, "martes": time.Tuesday,
	"wednesday": time.Wednesday, "miercoles": time.Wednesday, "miércoles": time.Wednesday,
	"thursday": time.Thursday, "jueves": time.Thursday,
	"friday": time.Friday, "viernes": time.Friday,
	"saturday": time.Saturday, "sabado": time.Saturday, "sábado": time.Saturday,
}

// ParseWeekday parses an English or Spanish weekday name
func ParseWeekday(s string) (time.Weekday, error) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return time.Sunday, fmt.Errorf("unknown weekday %q", s)
	}
	return wd, nil
}

// Resolver turns calendar days and weeks in the operating timezone into
// UTC windows. It holds no state besides its clock, location and week start,
// so equal inputs always resolve to equal windows.
type Resolver struct {
	clock     shared.Clock
	loc       *time.Location
	weekStart time.Weekday
}

// NewResolver creates a resolver. A nil clock uses the system clock and a
// nil location uses UTC.
func NewResolver(clock shared.Clock, loc *time.Location, weekStart time.Weekday) *Resolver {
	if clock == nil {
		clock = shared.SystemClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{clock: clock, loc: loc, weekStart: weekStart}
}

// Location returns the operating timezone
func (r *Resolver) Location() *time.Location {
	return r.loc
}

// WeekStart returns the configured first day of the week
func (r *Resolver) WeekStart() time.Weekday {
	return r.weekStart
}

// Now returns the current instant in UTC
func (r *Resolver) Now() time.Time {
	return r.clock.Now().UTC()
}

// Today returns the current calendar date in the operating timezone
func (r *Resolver) Today() LocalDate {
	return LocalDateOf(r.clock.Now(), r.loc)
}

// DateOf returns the local calendar date of an instant
func (r *Resolver) DateOf(t time.Time) LocalDate {
	return LocalDateOf(t, r.loc)
}

// ResolveCalendarDay returns [local midnight, next local midnight) in UTC
func (r *Resolver) ResolveCalendarDay(d LocalDate) Window {
	return NewWindow(d.Midnight(r.loc), d.AddDays(1).Midnight(r.loc))
}

// ResolveDateRange returns the window covering the inclusive local range [from, to]
func (r *Resolver) ResolveDateRange(from, to LocalDate) (Window, error) {
	if to.Before(from) {
		return Window{}, shared.NewInvalidDateError("end date %s is before start date %s", to, from)
	}
	return NewWindow(from.Midnight(r.loc), to.AddDays(1).Midnight(r.loc)), nil
}

// WeekBounds returns the first and last local dates of the week containing d
func (r *Resolver) WeekBounds(d LocalDate, weekStart time.Weekday) (LocalDate, LocalDate) {
	offset := (int(d.Weekday()) - int(weekStart) + 7) % 7
	first := d.AddDays(-offset)
	return first, first.AddDays(6)
}

// ResolveWeek returns the seven-day window containing d, anchored on weekStart
func (r *Resolver) ResolveWeek(d LocalDate, weekStart time.Weekday) Window {
	first, last := r.WeekBounds(d, weekStart)
	return NewWindow(first.Midnight(r.loc), last.AddDays(1).Midnight(r.loc))
}

// ResolveNextWindow computes the next reconciliation window for a collector.
// It starts where the last final cut of the kind ended, or at the start of
// the current local day when there is none. ModeOpen ends it now; ModeFinal
// ends it at the local end of the day or of the configured week.
// The returned window may be empty when the current period is already cut.
func (r *Resolver) ResolveNextWindow(last *Window, kind Kind, mode Mode) Window {
	today := r.Today()

	start := today.Midnight(r.loc)
	if last != nil {
		start = last.End
	}

	var end time.Time
	switch {
	case mode == ModeOpen:
		end = r.Now()
	case kind == KindWeekly:
		end = r.ResolveWeek(today, r.weekStart).End
	default:
		end = r.ResolveCalendarDay(today).End
	}
	return NewWindow(start, end)
}

// ValidateNotFuture rejects dates after the current local date
func (r *Resolver) ValidateNotFuture(d LocalDate) error {
	if d.After(r.Today()) {
		return shared.NewInvalidDateError("date %s is in the future", d)
	}
	return nil
}
