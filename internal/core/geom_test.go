package core

import "testing"

func TestBoxOverlaps(t *testing.T) {
	player := NewBox(220, 120, 48, 48)

	tests := []struct {
		name     string
		other    Box
		expected bool
	}{
		{"obstacle under player", NewBox(230, 120, 30, 36), true},
		{"obstacle ahead", NewBox(300, 120, 30, 36), false},
		{"touching leading edge", NewBox(268, 120, 30, 36), false},
		{"touching trailing edge", NewBox(190, 120, 30, 36), false},
		{"player cleared the top", NewBox(230, 84, 30, 36), false},
		{"sub-unit overlap", NewBox(267.5, 120, 30, 36), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := player.Overlaps(tc.other); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.other.Overlaps(player); got != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestClampF(t *testing.T) {
	if ClampF(0.25, 0, 1) != 0.25 {
		t.Error("ClampF changed an in-range value")
	}
	if ClampF(-0.5, 0, 1) != 0 || ClampF(1.5, 0, 1) != 1 {
		t.Error("ClampF did not clamp to bounds")
	}
}

func TestMinMax(t *testing.T) {
	if Min(3, 7) != 3 || Min(7, 3) != 3 {
		t.Error("Min returned the larger value")
	}
	if Max(3, 7) != 7 || Max(7, 3) != 7 {
		t.Error("Max returned the smaller value")
	}
}
