package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatIDR(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "Rp 0"},
		{150, "Rp 150"},
		{1500, "Rp 1.500"},
		{25000, "Rp 25.000"},
		{1234567, "Rp 1.234.567"},
		{20000.75, "Rp 20.000"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, FormatIDR(tc.amount))
	}
}
