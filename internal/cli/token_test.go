package cli

import (
	"testing"

	"github.com/tarotdaily/tarotdaily/internal/models"
)

func TestParseCardRef(t *testing.T) {
	cases := []struct {
		arg     string
		want    models.CardRef
		wantErr bool
	}{
		{arg: "major_00_the_fool:upright", want: models.CardRef{ID: "major_00_the_fool", Position: models.PositionUpright}},
		{arg: "wands_01_ace_of_wands:reversed", want: models.CardRef{ID: "wands_01_ace_of_wands", Position: models.PositionReversed}},
		{arg: "major_00_the_fool", wantErr: true},
		{arg: ":upright", wantErr: true},
		{arg: "major_00_the_fool:sideways", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.arg, func(t *testing.T) {
			got, err := parseCardRef(tc.arg)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.arg)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}
