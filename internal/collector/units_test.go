package collector

import "testing"

func TestUnitConversion(t *testing.T) {
	tests := []struct {
		bytes  uint64
		wantGB float64
		wantMB float64
	}{
		{0, 0, 0},
		{1024 * 1024, 0, 1},
		{1024 * 1024 * 1024, 1, 1024},
		{1536 * 1024 * 1024, 1.5, 1536},
		{16240345088, 15.13, 15488},
		{123456789, 0.11, 117.74},
	}

	for _, tt := range tests {
		if got := toGB(tt.bytes); got != tt.wantGB {
			t.Errorf("toGB(%d) = %v, 期望 %v", tt.bytes, got, tt.wantGB)
		}
		if got := toMB(tt.bytes); got != tt.wantMB {
			t.Errorf("toMB(%d) = %v, 期望 %v", tt.bytes, got, tt.wantMB)
		}
	}
}

func TestClampPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-1, 0},
		{0, 0},
		{55.5, 55.5},
		{100, 100},
		{100.4, 100},
	}

	for _, tt := range tests {
		if got := clampPercent(tt.in); got != tt.want {
			t.Errorf("clampPercent(%v) = %v, 期望 %v", tt.in, got, tt.want)
		}
	}
}

func TestRound(t *testing.T) {
	if got := round1(30.05); got != 30.1 {
		t.Errorf("round1(30.05) = %v, 期望 30.1", got)
	}
	if got := round2(1234.5678); got != 1234.57 {
		t.Errorf("round2(1234.5678) = %v, 期望 1234.57", got)
	}
}
