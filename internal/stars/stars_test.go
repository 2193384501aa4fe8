package stars

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A trimmed slice of a SIMBAD list query, pipe-separated:
// number | identifier | type | coordinates | U | B | V | R | I | spectral | refs
const sampleCatalog = `C.D.S.  -  SIMBAD4 rel 1.8  -  2024.06
Number of objects : 6
--------------------------------
1 |* alf Lyr      |PM*|18 36 56.33 +38 47 01.2|0.03|0.03|0.03|0.07|0.10|A0Va  |1234
2 |* alf Boo      |RG*|14 15 39.67 +19 10 56.6|~   |1.18|-0.05|~  |~   |K1.5III|987
3 |* alf Ori      |s*r|05 55 10.30 +07 24 25.4|~   |2.27|0.42|~   |~   |M1-M2Ia|654
4 |HD12345        |*  |02 00 00.00 -45 00 00.0|~   |5.10|4.90|~   |~   |G2V   |11
5 |* faint one    |*  |12 00 00.00 +10 00 00.0|~   |~   |8.90|~   |~   |F5V   |3
6 |* no vmag      |*  |13 00 00.00 +20 00 00.0|~   |3.10|~   |~   |~   |B2V   |5
`

func TestParse(t *testing.T) {
	got, err := Parse(strings.NewReader(sampleCatalog), Default())
	require.NoError(t, err)

	// Star 4 is south of -10°, star 5 is fainter than 6.5, star 6 has no
	// V magnitude; the three bright northern stars remain, brightest first.
	require.Len(t, got, 3)
	assert.Equal(t, "alf Boo", got[0].Name)
	assert.Equal(t, "alf Lyr", got[1].Name)
	assert.Equal(t, "alf Ori", got[2].Name)
}

func TestParse_Coordinates(t *testing.T) {
	got, err := Parse(strings.NewReader(sampleCatalog), Filter{})
	require.NoError(t, err)
	require.NotEmpty(t, got)

	var vega Star
	for _, s := range got {
		if s.Name == "alf Lyr" {
			vega = s
		}
	}
	require.NotZero(t, vega.ID)

	// 18h 36m 56.33s → (18 + 36/60 + 56.33/3600) * 15 degrees.
	assert.InDelta(t, 279.2347, vega.RADeg, 0.001)
	assert.InDelta(t, 38.7837, vega.DecDeg, 0.001)
}

func TestParse_SouthernDeclination(t *testing.T) {
	got, err := Parse(strings.NewReader(sampleCatalog), Filter{})
	require.NoError(t, err)

	var southern Star
	for _, s := range got {
		if s.Name == "HD 12345" {
			southern = s
		}
	}
	require.NotZero(t, southern.ID, "unfiltered parse must keep southern stars")
	assert.InDelta(t, -45.0, southern.DecDeg, 0.001)
}

func TestStarColor(t *testing.T) {
	// B−V index wins over the spectral class when both magnitudes exist.
	red := starColor("M1-M2Ia", "2.27", "0.42") // B−V = 1.85
	assert.InDelta(t, 1.0, red.R, 0.001)
	assert.InDelta(t, 0.6, red.G, 0.001)
	assert.InDelta(t, 0.3, red.B, 0.001)

	blue := starColor("B2V", "~", "~") // class only
	assert.InDelta(t, 0.9, blue.R, 0.001)
	assert.InDelta(t, 1.0, blue.B, 0.001)

	sunlike := starColor("G2V", "~", "~")
	assert.InDelta(t, 0.8, sunlike.G, 0.001)
}

func TestParse_GarbageLines(t *testing.T) {
	input := sampleCatalog + "\nnot a row at all\n7 |broken\n"
	got, err := Parse(strings.NewReader(input), Default())
	require.NoError(t, err)
	assert.Len(t, got, 3, "mangled rows are skipped, not fatal")
}
