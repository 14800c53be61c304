package swpcadapter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestActivityLevelFor(t *testing.T) {
	testCases := []struct {
		kp   float64
		want string
	}{
		{0.33, "Very Quiet - Unlikely aurora activity"},
		{3.0, "Quiet - Aurora may be visible overhead at high latitudes"},
		{4.67, "Active - Aurora likely visible at high latitudes"},
		{5.0, "Minor Storm - Possible aurora visibility"},
		{6.33, "Moderate Storm - Good aurora visibility"},
		{7.0, "Major Storm - Excellent aurora visibility"},
		{9.0, "Major Storm - Excellent aurora visibility"},
	}

	for _, tc := range testCases {
		require.Equal(t, tc.want, ActivityLevelFor(tc.kp), "kp %.2f", tc.kp)
	}
}

func TestGScaleFor(t *testing.T) {
	require.Equal(t, "G0", GScaleFor(nil).Level)

	testCases := []struct {
		kp   float64
		want string
	}{
		{0, "G0"},
		{4.99, "G0"},
		{5, "G1"},
		{6, "G2"},
		{7, "G3"},
		{8, "G4"},
		{9, "G5"},
	}

	for _, tc := range testCases {
		kp := tc.kp
		require.Equal(t, tc.want, GScaleFor(&kp).Level, "kp %.2f", tc.kp)
	}
}
