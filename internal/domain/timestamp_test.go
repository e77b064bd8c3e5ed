package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatWireTime(t *testing.T) {
	t.Parallel()

	ts := time.Date(2021, 1, 10, 10, 33, 1, 420_000_000, time.UTC)
	require.Equal(t, "2021-01-10T10:33:01.420Z", FormatWireTime(ts))

	// whole seconds still carry the fractional part
	ts = time.Date(2021, 1, 10, 10, 33, 1, 0, time.UTC)
	require.Equal(t, "2021-01-10T10:33:01.000Z", FormatWireTime(ts))

	// non-UTC input is normalized
	loc := time.FixedZone("x", 3*3600)
	ts = time.Date(2021, 1, 10, 13, 33, 1, 0, loc)
	require.Equal(t, "2021-01-10T10:33:01.000Z", FormatWireTime(ts))
}

func TestParseWireTime(t *testing.T) {
	t.Parallel()

	got, err := ParseWireTime("2021-01-10T10:33:01.42Z")
	require.NoError(t, err)
	require.Equal(t, time.Date(2021, 1, 10, 10, 33, 1, 420_000_000, time.UTC), got)

	got, err = ParseWireTime("2021-01-10T13:33:01+03:00")
	require.NoError(t, err)
	require.Equal(t, time.Date(2021, 1, 10, 10, 33, 1, 0, time.UTC), got)

	_, err = ParseWireTime("2021-01-10 10:33:01")
	require.Error(t, err)
	_, err = ParseWireTime("")
	require.Error(t, err)
}
