package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeatID(t *testing.T) {
	tests := []struct {
		id      string
		row     int
		col     int
		wantErr bool
	}{
		{id: "A1", row: 1, col: 1},
		{id: "A12", row: 1, col: 12},
		{id: "Z99", row: 26, col: 99},
		{id: "C7", row: 3, col: 7},
		{id: "", wantErr: true},
		{id: "A", wantErr: true},
		{id: "a1", wantErr: true},
		{id: "A0", wantErr: true},
		{id: "AA1", wantErr: true},
		{id: "A100", wantErr: true},
		{id: "1A", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			row, col, err := ParseSeatID(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.row, row)
			assert.Equal(t, tt.col, col)
		})
	}
}

func TestSeatInLayout(t *testing.T) {
	// 5 rows (A-E), 10 seats per row
	assert.True(t, SeatInLayout("A1", 5, 10))
	assert.True(t, SeatInLayout("E10", 5, 10))
	assert.False(t, SeatInLayout("F1", 5, 10))
	assert.False(t, SeatInLayout("A11", 5, 10))
	assert.False(t, SeatInLayout("bogus", 5, 10))
}

func TestSeatIDRoundTrip(t *testing.T) {
	assert.Equal(t, "A1", SeatID(1, 1))
	assert.Equal(t, "E10", SeatID(5, 10))

	row, col, err := ParseSeatID(SeatID(12, 34))
	require.NoError(t, err)
	assert.Equal(t, 12, row)
	assert.Equal(t, 34, col)
}
