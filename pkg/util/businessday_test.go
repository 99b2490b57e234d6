package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExpectedDeliveryDate(t *testing.T) {
	// 2024-01-05 is a Friday.
	friday := time.Date(2024, 1, 5, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name           string
		from           time.Time
		processingDays int
		shippingDays   int
		want           time.Time
	}{
		{
			name:           "lands on a weekday",
			from:           friday,
			processingDays: 2,
			shippingDays:   3,
			// Friday + 5 days = Wednesday.
			want: time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC),
		},
		{
			name:           "saturday pushed to monday",
			from:           friday,
			processingDays: 1,
			shippingDays:   0,
			want:           time.Date(2024, 1, 8, 9, 30, 0, 0, time.UTC),
		},
		{
			name:           "sunday pushed to monday",
			from:           friday,
			processingDays: 1,
			shippingDays:   1,
			want:           time.Date(2024, 1, 8, 9, 30, 0, 0, time.UTC),
		},
		{
			name:           "zero lead time keeps weekday",
			from:           friday,
			processingDays: 0,
			shippingDays:   0,
			want:           friday,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpectedDeliveryDate(tt.from, tt.processingDays, tt.shippingDays)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.0, Round2(10.004))
	assert.Equal(t, 10.13, Round2(10.128))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, 250000.0, Round2(100000.0+3*50000.0))
}

func TestWholeVND(t *testing.T) {
	assert.Equal(t, int64(520000), WholeVND(520000))
	assert.Equal(t, int64(520000), WholeVND(519999.60))
	assert.Equal(t, int64(520000), WholeVND(520000.40))
	assert.Equal(t, int64(470000), WholeVND(470000.00000000006))
	assert.Equal(t, int64(0), WholeVND(0))
}
