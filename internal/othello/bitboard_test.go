package othello

import (
	"testing"

	"github.com/dekritpn/kawio/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordToPos(t *testing.T) {
	t.Run("Maps the four corners", func(t *testing.T) {
		// Given: the documented orientation, bit 0 = A8 and bit 63 = H1
		cases := map[string]int{
			"A1": 56,
			"H8": 7,
			"A8": 0,
			"H1": 63,
			"D3": 43,
		}

		for coord, want := range cases {
			// When: parsing the coordinate
			pos, err := CoordToPos(coord)

			// Then: it should map to the expected position
			require.NoError(t, err)
			assert.Equal(t, want, pos, "coord %s", coord)
		}
	})

	t.Run("Accepts mixed case", func(t *testing.T) {
		// Given: the same square written three ways
		upper, err := CoordToPos("E3")
		require.NoError(t, err)

		// When: parsing lowercase variants
		lower, err := CoordToPos("e3")
		require.NoError(t, err)

		// Then: they should all map to the same position
		assert.Equal(t, upper, lower)
	})

	t.Run("Rejects malformed coordinates", func(t *testing.T) {
		// Given: inputs outside the A-H / 1-8 grid
		for _, coord := range []string{"I1", "A9", "A0", "A", "E10", "3E", "", "!!"} {
			// When: parsing them
			_, err := CoordToPos(coord)

			// Then: each should fail with ErrInvalidCoordinate
			assert.ErrorIs(t, err, apperror.ErrInvalidCoordinate, "coord %q", coord)
		}
	})
}

func TestPosToCoord_RoundTrip(t *testing.T) {
	// Given: every valid board position
	for pos := 0; pos < Squares; pos++ {
		// When: rendering and re-parsing its coordinate
		coord := PosToCoord(pos)
		back, err := CoordToPos(coord)

		// Then: the round trip should be the identity
		require.NoError(t, err)
		assert.Equal(t, pos, back, "coord %s", coord)
	}
}
