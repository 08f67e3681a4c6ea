package collector

import "testing"

func TestKelvinTenthsToCelsius(t *testing.T) {
	tests := []struct {
		raw  float64
		want float64
	}{
		{2731.5, 0},
		{3032, 30.1}, // 303.2K -> 30.05°C -> 保留一位小数
		{3231.5, 50},
	}

	for _, tt := range tests {
		if got := kelvinTenthsToCelsius(tt.raw); got != tt.want {
			t.Errorf("kelvinTenthsToCelsius(%v) = %v, 期望 %v", tt.raw, got, tt.want)
		}
	}
}

func TestOptionalTemp(t *testing.T) {
	if got := optionalTemp(0); got != nil {
		t.Errorf("0 应该按缺失处理，实际 %v", *got)
	}
	if got := optionalTemp(-1); got != nil {
		t.Errorf("负值应该按缺失处理，实际 %v", *got)
	}
	if got := optionalTemp(84.26); got == nil || *got != 84.3 {
		t.Errorf("optionalTemp(84.26) = %v, 期望 84.3", got)
	}
}
