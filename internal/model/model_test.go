package model

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayOffsets_PastDaysAreNonNegative(t *testing.T) {
	todays := []Date{
		NewDate(2024, time.March, 10),   // US DST start
		NewDate(2024, time.October, 27), // EU DST end
		NewDate(2024, time.February, 29),
		NewDate(2025, time.January, 1),
	}

	for _, today := range todays {
		t.Run(today.String(), func(t *testing.T) {
			for d := 0; d <= 500; d++ {
				got := DayOffsets([]Date{today.AddDays(-d)}, today)
				require.Equal(t, []int{d}, got, "d=%d", d)
			}
		})
	}
}

func TestDayOffsets_LongSpans(t *testing.T) {
	today := NewDate(2024, time.March, 14)

	tests := []struct {
		name string
		days int
	}{
		{"just under duration limit", 106751},
		{"duration limit", 106752},
		{"far past", 120000},
		{"four centuries", 146097},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DayOffsets([]Date{today.AddDays(-tt.days)}, today)
			assert.Equal(t, []int{tt.days}, got)
		})
	}

	assert.Equal(t, []int{118411}, DayOffsets([]Date{NewDate(1700, time.January, 1)}, today))
}

func TestDayOffsets_TodayIsZero(t *testing.T) {
	today := DateOf(time.Now())
	assert.Equal(t, []int{0}, DayOffsets([]Date{today}, today))
}

func TestDayOffsets_FutureIsNegative(t *testing.T) {
	today := NewDate(2024, time.March, 14)
	assert.Equal(t, []int{-1, -30}, DayOffsets([]Date{today.AddDays(1), today.AddDays(30)}, today))
}

func TestDayOffsets_PreservesOrderAndLength(t *testing.T) {
	today := NewDate(2024, time.March, 14)
	want := []int{15, 8, 0, 3, 3, 12}

	dates := make([]Date, len(want))
	for i, d := range want {
		dates[i] = today.AddDays(-d)
	}

	got := DayOffsets(dates, today)
	assert.Len(t, got, len(dates))
	assert.Equal(t, want, got)
}

func TestDayOffsets_Idempotent(t *testing.T) {
	today := NewDate(2023, time.December, 31)
	dates := []Date{today.AddDays(-1), today.AddDays(-365), NewDate(2023, time.January, 1)}

	first := DayOffsets(dates, today)
	second := DayOffsets(dates, today)
	assert.Equal(t, first, second)
	assert.Equal(t, []int{1, 365, 364}, first)
}

func TestDateOf_IgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	late := time.Date(2024, time.June, 1, 23, 59, 59, 0, loc)
	early := time.Date(2024, time.June, 1, 0, 0, 1, 0, loc)

	assert.Equal(t, DateOf(late), DateOf(early))
	assert.Equal(t, 0, DateOf(late).DaysSince(DateOf(early)))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    Date
		wantErr bool
	}{
		{"2024-03-14", NewDate(2024, time.March, 14), false},
		{"2000-02-29", NewDate(2000, time.February, 29), false},
		{"2024-13-01", Date{}, true},
		{"14/03/2024", Date{}, true},
		{"", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestNewDate_Normalizes(t *testing.T) {
	assert.Equal(t, NewDate(2024, time.March, 1), NewDate(2024, time.February, 30))
}

func TestError_IsMatchesKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", StatusError("https://example.com", 500))

	assert.True(t, errors.Is(err, ErrProtocol))
	assert.False(t, errors.Is(err, ErrNotFound))

	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 500, perr.Status)
}

func TestError_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewError(KindTransport, "https://example.com", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestAtOffset(t *testing.T) {
	t.Run("stamps model error", func(t *testing.T) {
		orig := StatusError("https://example.com/a", 503)
		err := AtOffset(orig, 7)

		var perr *Error
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, KindProtocol, perr.Kind)
		assert.Equal(t, 7, perr.Offset)
		assert.True(t, perr.HasOffset)
		assert.False(t, orig.HasOffset, "original must not be mutated")
		assert.Contains(t, err.Error(), "offset 7")
		assert.Contains(t, err.Error(), "status 503")
	})

	t.Run("classifies foreign error as transport", func(t *testing.T) {
		err := AtOffset(errors.New("boom"), 0)
		assert.ErrorIs(t, err, ErrTransport)
		assert.Contains(t, err.Error(), "offset 0")
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, AtOffset(nil, 3))
	})
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindTransport, "transport error"},
		{KindProtocol, "protocol error"},
		{KindDecode, "decode error"},
		{KindNotFound, "not found"},
		{KindFilesystem, "filesystem error"},
		{Kind(0), "unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}
