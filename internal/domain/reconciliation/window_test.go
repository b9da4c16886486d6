package reconciliation

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mexicoCity(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(DefaultTimezone)
	require.NoError(t, err)
	return loc
}

func utc(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

func mustDate(t *testing.T, s string) LocalDate {
	t.Helper()
	d, err := ParseLocalDate(s)
	require.NoError(t, err)
	return d
}

func TestResolver_ResolveCalendarDay(t *testing.T) {
	r := NewResolver(shared.FixedClock{T: utc(2024, 5, 1, 20, 0)}, mexicoCity(t), time.Thursday)

	t.Run("local midnight to next local midnight in UTC", func(t *testing.T) {
		w := r.ResolveCalendarDay(mustDate(t, "2024-05-01"))
		assert.Equal(t, utc(2024, 5, 1, 6, 0), w.Start)
		assert.Equal(t, utc(2024, 5, 2, 6, 0), w.End)
		assert.Equal(t, time.UTC, w.Start.Location())
	})

	t.Run("short day on a daylight saving transition", func(t *testing.T) {
		w := r.ResolveCalendarDay(mustDate(t, "2021-04-04"))
		assert.Equal(t, utc(2021, 4, 4, 6, 0), w.Start)
		assert.Equal(t, utc(2021, 4, 5, 5, 0), w.End)
		assert.Equal(t, 23*time.Hour, w.End.Sub(w.Start))
	})

	t.Run("month rollover", func(t *testing.T) {
		w := r.ResolveCalendarDay(mustDate(t, "2024-02-29"))
		assert.Equal(t, utc(2024, 3, 1, 6, 0), w.End)
	})
}

func TestResolver_ResolveWeek(t *testing.T) {
	r := NewResolver(shared.FixedClock{T: utc(2024, 5, 1, 20, 0)}, mexicoCity(t), time.Thursday)

	tests := []struct {
		name      string
		date      string
		weekStart time.Weekday
		first     string
		last      string
	}{
		{"wednesday closes a thursday week", "2024-05-01", time.Thursday, "2024-04-25", "2024-05-01"},
		{"thursday opens a thursday week", "2024-05-02", time.Thursday, "2024-05-02", "2024-05-08"},
		{"monday anchored week", "2024-05-01", time.Monday, "2024-04-29", "2024-05-05"},
		{"wednesday anchored week", "2024-05-01", time.Wednesday, "2024-05-01", "2024-05-07"},
		{"sunday anchored week across month", "2024-06-01", time.Sunday, "2024-05-26", "2024-06-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustDate(t, tt.date)
			first, last := r.WeekBounds(d, tt.weekStart)
			assert.Equal(t, tt.first, first.String())
			assert.Equal(t, tt.last, last.String())

			w := r.ResolveWeek(d, tt.weekStart)
			assert.Equal(t, r.ResolveCalendarDay(first).Start, w.Start)
			assert.Equal(t, r.ResolveCalendarDay(last).End, w.End)
		})
	}
}

func TestResolver_ResolveNextWindow(t *testing.T) {
	loc := mexicoCity(t)
	now := utc(2024, 5, 1, 20, 0) // 14:00 local
	r := NewResolver(shared.FixedClock{T: now}, loc, time.Thursday)

	t.Run("no previous cut starts at local start of day", func(t *testing.T) {
		w := r.ResolveNextWindow(nil, KindDaily, ModeOpen)
		assert.Equal(t, utc(2024, 5, 1, 6, 0), w.Start)
		assert.Equal(t, now, w.End)
	})

	t.Run("final daily window ends at local end of day", func(t *testing.T) {
		w := r.ResolveNextWindow(nil, KindDaily, ModeFinal)
		assert.Equal(t, utc(2024, 5, 2, 6, 0), w.End)
	})

	t.Run("final weekly window ends at end of configured week", func(t *testing.T) {
		w := r.ResolveNextWindow(nil, KindWeekly, ModeFinal)
		assert.Equal(t, utc(2024, 5, 2, 6, 0), w.End)
	})

	t.Run("starts where the previous cut ended", func(t *testing.T) {
		last := NewWindow(utc(2024, 4, 28, 6, 0), utc(2024, 4, 29, 6, 0))
		w := r.ResolveNextWindow(&last, KindDaily, ModeFinal)
		assert.Equal(t, last.End, w.Start)
		assert.Equal(t, utc(2024, 5, 2, 6, 0), w.End)
	})

	t.Run("empty once today is already cut", func(t *testing.T) {
		last := r.ResolveCalendarDay(mustDate(t, "2024-05-01"))
		assert.True(t, r.ResolveNextWindow(&last, KindDaily, ModeFinal).IsEmpty())
		assert.True(t, r.ResolveNextWindow(&last, KindDaily, ModeOpen).IsEmpty())
	})

	t.Run("late evening local time still belongs to the local day", func(t *testing.T) {
		late := NewResolver(shared.FixedClock{T: utc(2024, 5, 2, 3, 0)}, loc, time.Thursday)
		assert.Equal(t, "2024-05-01", late.Today().String())
		w := late.ResolveNextWindow(nil, KindDaily, ModeFinal)
		assert.Equal(t, utc(2024, 5, 1, 6, 0), w.Start)
		assert.Equal(t, utc(2024, 5, 2, 6, 0), w.End)
	})

	t.Run("deterministic for equal inputs", func(t *testing.T) {
		a := r.ResolveNextWindow(nil, KindDaily, ModeOpen)
		b := r.ResolveNextWindow(nil, KindDaily, ModeOpen)
		assert.Equal(t, a, b)
	})
}

func TestResolver_DateValidation(t *testing.T) {
	r := NewResolver(shared.FixedClock{T: utc(2024, 5, 1, 20, 0)}, mexicoCity(t), time.Thursday)

	t.Run("unparsable dates", func(t *testing.T) {
		for _, s := range []string{"", "01/05/2024", "2024-02-30", "yesterday"} {
			_, err := ParseLocalDate(s)
			assert.ErrorIs(t, err, shared.ErrInvalidDate, s)
		}
	})

	t.Run("future date rejected", func(t *testing.T) {
		assert.ErrorIs(t, r.ValidateNotFuture(mustDate(t, "2024-05-02")), shared.ErrInvalidDate)
		assert.NoError(t, r.ValidateNotFuture(mustDate(t, "2024-05-01")))
		assert.NoError(t, r.ValidateNotFuture(mustDate(t, "2023-12-31")))
	})

	t.Run("inverted range rejected", func(t *testing.T) {
		_, err := r.ResolveDateRange(mustDate(t, "2024-05-02"), mustDate(t, "2024-05-01"))
		assert.ErrorIs(t, err, shared.ErrInvalidDate)
	})
}

func TestWindow(t *testing.T) {
	w := NewWindow(utc(2024, 5, 1, 6, 0), utc(2024, 5, 2, 6, 0))

	assert.True(t, w.Contains(w.Start))
	assert.False(t, w.Contains(w.End), "end is exclusive")
	assert.False(t, w.IsEmpty())

	next := NewWindow(w.End, w.End.Add(24*time.Hour))
	assert.False(t, w.Overlaps(next), "adjacent windows do not overlap")
	assert.True(t, w.Overlaps(NewWindow(w.Start.Add(time.Hour), w.End.Add(time.Hour))))
	assert.True(t, NewWindow(w.Start, next.End).ContainsWindow(w))
}

func TestParseWeekday(t *testing.T) {
	for in, want := range map[string]time.Weekday{"thursday": time.Thursday, "Jueves": time.Thursday, " monday ": time.Monday, "miércoles": time.Wednesday} {
		got, err := ParseWeekday(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseWeekday("someday")
	assert.Error(t, err)
}
