package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripOuterParens(t *testing.T) {
	cases := []struct {
		in     string
		expect string
	}{
		{in: "(sequel)", expect: "sequel"},
		{in: "sequel", expect: "sequel"},
		{in: "  (x)  ", expect: "x"},
		{in: "(a) and (b)", expect: "a) and (b"},
		{in: "", expect: ""},
		{in: "()", expect: ""},
		{in: "(+2)", expect: "+2"},
	}

	for _, test := range cases {
		require.Equal(t, test.expect, StripOuterParens(test.in), test.in)
	}
}

func TestCleanFragment(t *testing.T) {
	require.Equal(t, "ODA Eiichiro", CleanFragment("  ODA\n\tEiichiro "))
	// non-breaking spaces are not printable and get dropped outright
	require.Equal(t, "OnePiece", CleanFragment("One Piece"))
}
