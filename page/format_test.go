package page_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"uncommon/models"
	"uncommon/page"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		want   string
	}{
		{name: "zero", amount: 0, want: "$0"},
		{name: "below thousand", amount: 999, want: "$999"},
		{name: "thousands", amount: 8500, want: "$8,500"},
		{name: "minimum bid", amount: 8600, want: "$8,600"},
		{name: "millions", amount: 1234567, want: "$1,234,567"},
		{name: "negative", amount: -1200, want: "-$1,200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, page.FormatPrice(tt.amount))
		})
	}
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		name      string
		countdown *models.Countdown
		want      string
	}{
		{
			name:      "sample",
			countdown: &models.Countdown{Days: 1, Hours: 2, Minutes: 4, Seconds: 51},
			want:      "1d 2h 4m 51s",
		},
		{
			name:      "zero",
			countdown: &models.Countdown{},
			want:      "0d 0h 0m 0s",
		},
		{
			// 數值不做進位
			name:      "not normalized",
			countdown: &models.Countdown{Hours: 30, Minutes: 75, Seconds: 90},
			want:      "0d 30h 75m 90s",
		},
		{
			name:      "nil",
			countdown: nil,
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, page.FormatCountdown(tt.countdown))
		})
	}
}
