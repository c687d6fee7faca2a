package recur_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"planloop/internal/core/domain"
	"planloop/internal/core/recur"
)

func date(t *testing.T, value string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(value)
	require.NoError(t, err)
	return d
}

func TestStep_Daily(t *testing.T) {
	got := recur.Step(date(t, "2024-01-05"), domain.RecurrenceDaily, 1)
	require.Equal(t, "2024-01-06", got.String())
}

func TestStep_WeeklyCrossesMonth(t *testing.T) {
	got := recur.Step(date(t, "2024-01-29"), domain.RecurrenceWeekly, 1)
	require.Equal(t, "2024-02-05", got.String())
}

func TestStep_MonthlyClampsToMonthEnd(t *testing.T) {
	// Jan 31 + 1 month lands on the last valid day of February.
	require.Equal(t, "2024-02-29", recur.Step(date(t, "2024-01-31"), domain.RecurrenceMonthly, 1).String())
	require.Equal(t, "2023-02-28", recur.Step(date(t, "2023-01-31"), domain.RecurrenceMonthly, 1).String())
}

func TestStep_QuarterlyAndYearly(t *testing.T) {
	require.Equal(t, "2024-04-15", recur.Step(date(t, "2024-01-15"), domain.RecurrenceQuarterly, 1).String())
	require.Equal(t, "2025-02-28", recur.Step(date(t, "2024-02-29"), domain.RecurrenceYearly, 1).String())
}

func TestStep_UnknownUnitIsIdentity(t *testing.T) {
	d := date(t, "2024-01-05")
	require.Equal(t, d, recur.Step(d, domain.RecurrenceCustom, 3))
}

func TestSequence_DailyCountAndSpacing(t *testing.T) {
	start := date(t, "2024-03-01")
	got := recur.Sequence(start, domain.RecurrenceDaily, 10, 1)
	require.Len(t, got, 10)
	require.Equal(t, start, got[0])
	for i := 1; i < len(got); i++ {
		require.Equal(t, got[i-1].AddDays(1), got[i])
	}
}

func TestSequence_BiweeklySpacing(t *testing.T) {
	got := recur.Sequence(date(t, "2024-01-01"), domain.RecurrenceWeekly, 5, 2)
	require.Len(t, got, 5)
	for i := 1; i < len(got); i++ {
		diff := got[i].Time().Sub(got[i-1].Time())
		require.Equal(t, 14*24*time.Hour, diff)
	}
}

func TestSequence_MonthlyRecoversDayAfterClamp(t *testing.T) {
	// Anchor-based stepping: the day-31 anchor clamps in short months
	// but comes back in long ones instead of drifting.
	got := recur.Sequence(date(t, "2024-01-31"), domain.RecurrenceMonthly, 4, 1)
	require.Equal(t, "2024-01-31", got[0].String())
	require.Equal(t, "2024-02-29", got[1].String())
	require.Equal(t, "2024-03-31", got[2].String())
	require.Equal(t, "2024-04-30", got[3].String())
}

func TestSequence_StrictlyIncreasing(t *testing.T) {
	for _, unit := range []domain.Recurrence{
		domain.RecurrenceDaily,
		domain.RecurrenceWeekly,
		domain.RecurrenceMonthly,
		domain.RecurrenceQuarterly,
		domain.RecurrenceYearly,
	} {
		got := recur.Sequence(date(t, "2024-01-30"), unit, 8, 3)
		require.Len(t, got, 8, "unit %s", unit)
		for i := 1; i < len(got); i++ {
			require.True(t, got[i-1].Before(got[i]), "unit %s index %d", unit, i)
		}
	}
}

func TestSequence_DegradesOnBadInput(t *testing.T) {
	require.Nil(t, recur.Sequence(domain.Date{}, domain.RecurrenceDaily, 5, 1))
	require.Nil(t, recur.Sequence(date(t, "2024-01-01"), domain.RecurrenceNone, 5, 1))
	require.Nil(t, recur.Sequence(date(t, "2024-01-01"), domain.RecurrenceDaily, 0, 1))
	require.Nil(t, recur.Sequence(date(t, "2024-01-01"), domain.RecurrenceDaily, 5, 0))
}
