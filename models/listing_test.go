package models_test

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uncommon/models"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    models.Mode
		wantErr bool
	}{
		{name: "buy now", input: "buy-now", want: models.ModeBuyNow},
		{name: "auction", input: "auction", want: models.ModeAuction},
		{name: "empty", input: "", wantErr: true},
		{name: "unknown", input: "raffle", wantErr: true},
		{name: "wrong case", input: "Auction", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := models.ParseMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, got.Valid())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestListing_WithDefaults(t *testing.T) {
	t.Run("empty listing gets sample data", func(t *testing.T) {
		got := models.Listing{}.WithDefaults()
		assert.Equal(t, models.DefaultListing(), got)
	})

	t.Run("provided fields are kept", func(t *testing.T) {
		countdown := models.Countdown{Minutes: 90}
		got := models.Listing{
			Domain:     "example.io",
			Price:      lo.ToPtr(int64(1200)),
			Countdown:  &countdown,
			BidHistory: []models.BidRecord{},
		}.WithDefaults()

		assert.Equal(t, "example.io", got.Domain)
		assert.Equal(t, int64(1200), got.PriceValue())
		assert.Equal(t, models.DefaultDescription, got.DescriptionText())
		assert.Equal(t, countdown, *got.Countdown)
		// 空切片代表呼叫端明確提供了空的紀錄
		assert.Empty(t, got.BidHistory)
		assert.Equal(t, models.DefaultFacts(), got.Facts)
	})

	t.Run("explicit zero values are kept", func(t *testing.T) {
		got := models.Listing{
			Price:       lo.ToPtr(int64(0)),
			Description: lo.ToPtr(""),
		}.WithDefaults()

		require.NotNil(t, got.Price)
		assert.Equal(t, int64(0), *got.Price)
		require.NotNil(t, got.Description)
		assert.Equal(t, "", *got.Description)
	})

	t.Run("sample history order", func(t *testing.T) {
		history := models.DefaultListing().BidHistory
		require.Len(t, history, 3)
		assert.Equal(t, "Bidder X", history[0].Bidder)
		assert.Equal(t, "Bidder Z", history[2].Bidder)
	})
}
