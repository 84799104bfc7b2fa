package serial

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveBaud_Exact(t *testing.T) {
	for _, b := range supportedBauds {
		require.Equal(t, b.rate, ResolveBaud(b.rate))
	}
}

func TestResolveBaud_Clamping(t *testing.T) {
	cases := []struct {
		requested int
		want      int
	}{
		{0, 50},
		{1, 50},
		{49, 50},
		{51, 50},
		{74, 50},
		{75, 75},
		{133, 110},
		{134, 134},
		{9599, 4800},
		{9601, 9600},
		{100000, 57600},
		{460799, 230400},
		{460800, 460800},
		{500000, 460800},
		{1000000, 460800},
		{-9600, 50},
	}
	for _, c := range cases {
		require.Equal(t, c.want, ResolveBaud(c.requested), "requested %d", c.requested)
	}
}

func TestResolveBaud_MonotonicAndClosed(t *testing.T) {
	inSet := func(rate int) bool {
		for _, b := range supportedBauds {
			if b.rate == rate {
				return true
			}
		}
		return false
	}

	prev := 0
	for b := 0; b <= 500000; b += 97 {
		got := ResolveBaud(b)
		require.True(t, inSet(got), "ResolveBaud(%d) = %d not in supported set", b, got)
		require.GreaterOrEqual(t, got, prev, "ResolveBaud not non-decreasing at %d", b)
		prev = got
	}
}

func TestBaudToUnix_CoversSupportedSet(t *testing.T) {
	for _, b := range supportedBauds {
		bits, ok := baudToUnix(b.rate)
		require.True(t, ok)
		require.NotZero(t, bits)
	}
	_, ok := baudToUnix(12345)
	require.False(t, ok)
}
