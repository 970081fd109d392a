package models

import (
	"fmt"
	"strconv"
)

// ParseSeatID splits a seat label like "A12" into its one-based row and
// column. Row letters run A..Z, columns 1..99.
func ParseSeatID(id string) (row, col int, err error) {
	if len(id) < 2 || len(id) > 3 {
		return 0, 0, fmt.Errorf("invalid seat id %q", id)
	}
	r := id[0]
	if r < 'A' || r > 'Z' {
		return 0, 0, fmt.Errorf("invalid seat row in %q", id)
	}
	n, convErr := strconv.Atoi(id[1:])
	if convErr != nil || n < 1 {
		return 0, 0, fmt.Errorf("invalid seat number in %q", id)
	}
	return int(r-'A') + 1, n, nil
}

// SeatInLayout reports whether the seat label names a physical seat within
// a rows x seatsPerRow screen layout.
func SeatInLayout(id string, rows, seatsPerRow int) bool {
	row, col, err := ParseSeatID(id)
	if err != nil {
		return false
	}
	return row <= rows && col <= seatsPerRow
}

// SeatID builds the canonical label for a one-based row and column
func SeatID(row, col int) string {
	return fmt.Sprintf("%c%d", 'A'+row-1, col)
}
