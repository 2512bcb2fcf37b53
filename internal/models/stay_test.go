package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseStay(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		wantErr  error
		nights   int
	}{
		{name: "two nights", checkIn: "2026-06-01", checkOut: "2026-06-03", nights: 2},
		{name: "one night", checkIn: "2026-06-01", checkOut: "2026-06-02", nights: 1},
		{name: "zero nights rejected", checkIn: "2026-06-01", checkOut: "2026-06-01", wantErr: ErrCheckOutOrder},
		{name: "reversed rejected", checkIn: "2026-06-03", checkOut: "2026-06-01", wantErr: ErrCheckOutOrder},
		{name: "garbage check-in", checkIn: "June 1st", checkOut: "2026-06-03", wantErr: ErrBadDate},
		{name: "garbage check-out", checkIn: "2026-06-01", checkOut: "03/06/2026", wantErr: ErrBadDate},
		{name: "empty", checkIn: "", checkOut: "", wantErr: ErrBadDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stay, err := ParseStay(tt.checkIn, tt.checkOut)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.nights, stay.Nights())
		})
	}
}

func TestOverlaps(t *testing.T) {
	base := Stay{CheckIn: date("2026-06-01"), CheckOut: date("2026-06-03")}

	tests := []struct {
		name  string
		other Stay
		want  bool
	}{
		{"identical", Stay{date("2026-06-01"), date("2026-06-03")}, true},
		{"contained", Stay{date("2026-06-01"), date("2026-06-02")}, true},
		{"containing", Stay{date("2026-05-30"), date("2026-06-10")}, true},
		{"overlap tail", Stay{date("2026-06-02"), date("2026-06-04")}, true},
		{"overlap head", Stay{date("2026-05-31"), date("2026-06-02")}, true},
		{"back-to-back after", Stay{date("2026-06-03"), date("2026-06-05")}, false},
		{"back-to-back before", Stay{date("2026-05-30"), date("2026-06-01")}, false},
		{"disjoint after", Stay{date("2026-06-10"), date("2026-06-12")}, false},
		{"disjoint before", Stay{date("2026-05-01"), date("2026-05-03")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			// symmetry
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}
