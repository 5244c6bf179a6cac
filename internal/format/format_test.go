package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestNumber(t *testing.T) {
	assert.Equal(t, NotAvailable, Number(nil))
	assert.Equal(t, "0", Number(f(0)))
	assert.Equal(t, "1,234,567", Number(f(1234567)))
	assert.Equal(t, "1,234.5", Number(f(1234.5)))
	assert.Equal(t, "999", Number(f(999)))
}

func TestCurrency(t *testing.T) {
	assert.Equal(t, NotAvailable, Currency(nil, ""))
	assert.Equal(t, "$0", Currency(f(0), ""))
	assert.Equal(t, "$5,000", Currency(f(5000), "USD"))
	assert.Equal(t, "€250,000.75", Currency(f(250000.75), "eur"))
	assert.Equal(t, "-$12.5", Currency(f(-12.5), ""))
	assert.Equal(t, "CHF 100", Currency(f(100), "CHF"))
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, NotAvailable, Percentage(nil))
	assert.Equal(t, "0%", Percentage(f(0)))
	assert.Equal(t, "12.5%", Percentage(f(12.5)))
}

func TestDates(t *testing.T) {
	assert.Equal(t, "Mar 5, 2025", Date("2025-03-05T18:30:00"))
	assert.Equal(t, "Mar 5, 2025", Date("2025-03-05T18:30:00.123456Z"))
	assert.Equal(t, "Mar 5, 2025", Date("2025-03-05"))
	assert.Equal(t, "Mar 5, 2025, 06:30 PM", DateTime("2025-03-05T18:30:00"))
	assert.Equal(t, NotAvailable, Date("yesterday"))
	assert.Equal(t, NotAvailable, DateTime(""))
}

func TestParseTime_ZoneLessIsUTC(t *testing.T) {
	got, err := ParseTime("2025-03-05T18:30:00")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, got.Location())
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	ago := func(d time.Duration) string { return now.Add(-d).Format(time.RFC3339) }
	day := 24 * time.Hour

	tests := []struct {
		in   string
		want string
	}{
		{ago(time.Hour), "Today"},
		{ago(-time.Hour), "Today"},
		{ago(day), "Yesterday"},
		{ago(3 * day), "3 days ago"},
		{ago(14 * day), "2 weeks ago"},
		{ago(95 * day), "3 months ago"},
		{ago(800 * day), "2 years ago"},
		{"garbage", NotAvailable},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RelativeTime(tt.in, now), tt.in)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exactly10!", Truncate("exactly10!", 10))
	assert.Equal(t, "Founders...", Truncate("Founders dinner", 9))
	assert.Equal(t, "Zürich...", Truncate("Zürich meetup", 6))
}
