package swisstable

import "testing"

func TestControlPredicates(t *testing.T) {
	tests := []struct {
		name             string
		c                ctrl
		wantFull         bool
		wantEmpty        bool
		wantEmptyOrDelete bool
	}{
		{"empty", ctrlEmpty, false, true, true},
		{"deleted", ctrlDeleted, false, false, true},
		{"sentinel", ctrlSentinel, false, false, false},
		{"full zero", fullCtrl(0), true, false, false},
		{"full max", fullCtrl(0x7f), true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isFull(tt.c); got != tt.wantFull {
				t.Errorf("isFull(%v) = %v, want %v", tt.name, got, tt.wantFull)
			}
			if got := isEmpty(tt.c); got != tt.wantEmpty {
				t.Errorf("isEmpty(%v) = %v, want %v", tt.name, got, tt.wantEmpty)
			}
			if got := isEmptyOrDeleted(tt.c); got != tt.wantEmptyOrDelete {
				t.Errorf("isEmptyOrDeleted(%v) = %v, want %v", tt.name, got, tt.wantEmptyOrDelete)
			}
		})
	}
}

func TestSplitHash(t *testing.T) {
	h1a, h2a := splitHash(0x123456789abcdef0, 0)
	h1b, h2b := splitHash(0x123456789abcdef0, 0x1000)
	if h2a != h2b {
		t.Errorf("H2 changed with addrEntropy: %v != %v", h2a, h2b)
	}
	if h1a == h1b {
		t.Error("H1 did not change when addrEntropy changed")
	}
	if h2a > h2Mask {
		t.Errorf("H2 = %#x exceeds h2Mask %#x", h2a, h2Mask)
	}
}

func TestCtrlName(t *testing.T) {
	tests := []struct {
		c    ctrl
		want string
	}{
		{ctrlEmpty, "kEmpty"},
		{ctrlDeleted, "kDeleted"},
		{ctrlSentinel, "kSentinel"},
		{fullCtrl(0x05), "H2(0x05)"},
	}
	for _, tt := range tests {
		if got := ctrlName(tt.c); got != tt.want {
			t.Errorf("ctrlName(%v) = %q, want %q", tt.c, got, tt.want)
		}
	}
}
