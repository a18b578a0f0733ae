package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLamportsToSOL(t *testing.T) {
	assert.Equal(t, "0.000000000", LamportsToSOL(0))
	assert.Equal(t, "0.000005000", LamportsToSOL(5000))
	assert.Equal(t, "1.000000000", LamportsToSOL(1_000_000_000))
	assert.Equal(t, "12.345678901", LamportsToSOL(12_345_678_901))
}

func TestSOLToLamports(t *testing.T) {
	cases := []struct {
		in   string
		want uint64
	}{
		{"0", 0},
		{"1", 1_000_000_000},
		{"0.05", 50_000_000},
		{"1.5", 1_500_000_000},
		{"0.000000001", 1},
		{" 2 ", 2_000_000_000},
		{"0.0000000019", 1}, // excess precision truncated
	}
	for _, c := range cases {
		got, err := SOLToLamports(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestSOLToLamports_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "-1", "1.2.3"} {
		_, err := SOLToLamports(in)
		require.Error(t, err, in)
	}
}

func TestSOLToLamports_Overflow(t *testing.T) {
	// 2e19 lamports does not fit in uint64; must error, not wrap
	_, err := SOLToLamports("20000000000")
	require.Error(t, err)

	got, err := SOLToLamports("18446744073")
	require.NoError(t, err)
	assert.Equal(t, uint64(18_446_744_073_000_000_000), got)
}

func TestRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 999_999_999, 1_000_000_000, 98_765_432_109} {
		got, err := SOLToLamports(LamportsToSOL(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestSumSOL(t *testing.T) {
	total, err := SumSOL("0.5", "1.25", "0.000000001")
	require.NoError(t, err)
	assert.Equal(t, "1.750000001", total)

	total, err = SumSOL()
	require.NoError(t, err)
	assert.Equal(t, "0.000000000", total)

	_, err = SumSOL("1", "bad")
	require.Error(t, err)
}

func TestCompareSOLAmounts(t *testing.T) {
	cmp, err := CompareSOLAmounts("1.5", "1.50")
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)

	cmp, err = CompareSOLAmounts("0.1", "0.2")
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	cmp, err = CompareSOLAmounts("2", "0.2")
	require.NoError(t, err)
	assert.Equal(t, 1, cmp)
}
