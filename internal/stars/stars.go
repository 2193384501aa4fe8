// Package stars parses SIMBAD-format star catalog listings into the records
// the dashboard's star field is drawn from: decimal-degree coordinates,
// visual magnitude and an approximate display color derived from the star's
// spectral class and B−V color index.
//
// The input is the pipe-separated text SIMBAD emits for list queries:
//
//	1 |* alf Cas |SB*|00 40 30.44 +56 32 14.3|~|2.10|2.24|~|~|K0IIIa|...
//
// Header lines, footers and rows without a V magnitude are skipped.
package stars

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Color is a normalized RGB triple for rendering a star.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Star is one renderable catalog entry.
type Star struct {
	ID        int     `json:"i"`
	Name      string  `json:"n"`
	RADeg     float64 `json:"ra_deg"`
	DecDeg    float64 `json:"dec_deg"`
	Magnitude float64 `json:"mag"`
	Color     Color   `json:"color"`
}

// Filter bounds which catalog rows become stars. The zero value keeps
// everything; Default matches the dashboard's naked-eye northern sky.
type Filter struct {
	MaxMagnitude   float64 // keep stars at or below this V magnitude; 0 = no limit
	MinDeclination float64 // drop stars south of this declination (degrees)
	hasMinDec      bool
}

// Default keeps naked-eye stars (V ≤ 6.5) visible from northern latitudes
// (declination ≥ −10°).
func Default() Filter {
	return Filter{MaxMagnitude: 6.5, MinDeclination: -10, hasMinDec: true}
}

// WithMinDeclination returns a copy of f with the declination cutoff set.
func (f Filter) WithMinDeclination(deg float64) Filter {
	f.MinDeclination = deg
	f.hasMinDec = true
	return f
}

// Parse reads a SIMBAD listing and returns the matching stars sorted
// brightest first. Rows that fail to parse are skipped, not fatal: one
// mangled catalog line must not lose the whole sky.
func Parse(r io.Reader, filter Filter) ([]Star, error) {
	var stars []Star

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !isDataLine(line) {
			continue
		}

		star, ok := parseRow(line)
		if !ok {
			continue
		}
		if filter.MaxMagnitude != 0 && star.Magnitude > filter.MaxMagnitude {
			continue
		}
		if filter.hasMinDec && star.DecDeg < filter.MinDeclination {
			continue
		}
		stars = append(stars, star)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	sort.Slice(stars, func(a, b int) bool {
		return stars[a].Magnitude < stars[b].Magnitude
	})
	return stars, nil
}

func isDataLine(line string) bool {
	if line == "" ||
		strings.HasPrefix(line, "C.D.S.") ||
		strings.HasPrefix(line, "Vmag") ||
		strings.HasPrefix(line, "Number") ||
		strings.HasPrefix(line, "#") ||
		strings.HasPrefix(line, "----") {
		return false
	}
	return line[0] >= '0' && line[0] <= '9'
}

// parseRow splits one pipe-separated catalog row:
// number | identifier | type | coordinates | U | B | V | R | [I] | [spectral] | refs
func parseRow(line string) (Star, bool) {
	parts := strings.Split(line, "|")
	if len(parts) < 8 {
		return Star{}, false
	}

	id, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Star{}, false
	}

	magV := strings.TrimSpace(parts[6])
	if magV == "" || magV == "~" {
		return Star{}, false
	}
	magnitude, err := strconv.ParseFloat(magV, 64)
	if err != nil {
		return Star{}, false
	}

	ra, dec, err := parseCoordinates(strings.TrimSpace(parts[3]))
	if err != nil {
		return Star{}, false
	}

	magB := strings.TrimSpace(parts[5])
	spectral := ""
	if len(parts) > 9 {
		spectral = strings.TrimSpace(parts[9])
	}

	name := strings.TrimSpace(parts[1])
	name = strings.ReplaceAll(name, "*", "")
	name = strings.ReplaceAll(name, "HD", "HD ")
	name = strings.TrimSpace(name)

	return Star{
		ID:        id,
		Name:      name,
		RADeg:     ra,
		DecDeg:    dec,
		Magnitude: magnitude,
		Color:     starColor(spectral, magB, magV),
	}, true
}

// parseCoordinates converts SIMBAD sexagesimal coordinates, e.g.
// "00 53 04.19 +61 07 26.29", to decimal degrees. RA hours become degrees
// (15° per hour).
func parseCoordinates(s string) (raDeg, decDeg float64, err error) {
	fields := strings.Fields(s)
	if len(fields) < 6 {
		return 0, 0, fmt.Errorf("malformed coordinates %q", s)
	}

	var ra [3]float64
	for i := 0; i < 3; i++ {
		ra[i], err = strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return 0, 0, fmt.Errorf("malformed coordinates %q: %w", s, err)
		}
	}

	decField := fields[3]
	sign := 1.0
	switch {
	case strings.HasPrefix(decField, "-"):
		sign = -1.0
		decField = decField[1:]
	case strings.HasPrefix(decField, "+"):
		decField = decField[1:]
	}

	var dec [3]float64
	dec[0], err = strconv.ParseFloat(decField, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed coordinates %q: %w", s, err)
	}
	for i := 1; i < 3; i++ {
		dec[i], err = strconv.ParseFloat(fields[3+i], 64)
		if err != nil {
			return 0, 0, fmt.Errorf("malformed coordinates %q: %w", s, err)
		}
	}

	raDeg = (ra[0] + ra[1]/60 + ra[2]/3600) * 15
	decDeg = sign * (dec[0] + dec[1]/60 + dec[2]/3600)
	return raDeg, decDeg, nil
}

// starColor estimates a display color from the spectral class, refined by
// the B−V color index when both magnitudes are present. Bluer classes (O, B)
// run toward blue-white, M dwarfs toward red; the B−V index, when known,
// overrides the class-based guess entirely.
func starColor(spectral, magB, magV string) Color {
	color := Color{R: 1, G: 0.95, B: 0.9} // default white

	var bv float64
	hasBV := false
	if magB != "" && magB != "~" && magV != "" && magV != "~" {
		b, errB := strconv.ParseFloat(magB, 64)
		v, errV := strconv.ParseFloat(magV, 64)
		if errB == nil && errV == nil {
			bv = b - v
			hasBV = true
		}
	}

	spec := strings.ToUpper(spectral)
	switch {
	case strings.HasPrefix(spec, "O"), strings.HasPrefix(spec, "B"):
		switch {
		case hasBV && bv < -0.2:
			color = Color{R: 0.7, G: 0.8, B: 1}
		case hasBV && bv < 0.0:
			color = Color{R: 0.8, G: 0.8, B: 1}
		default:
			color = Color{R: 0.9, G: 0.9, B: 1}
		}
	case strings.HasPrefix(spec, "A"):
		color = Color{R: 1, G: 0.95, B: 0.9}
	case strings.HasPrefix(spec, "F"):
		color = Color{R: 1, G: 0.9, B: 0.7}
	case strings.HasPrefix(spec, "G"):
		color = Color{R: 1, G: 0.8, B: 0.5}
	case strings.HasPrefix(spec, "K"):
		color = Color{R: 1, G: 0.7, B: 0.4}
	case strings.HasPrefix(spec, "M"):
		if hasBV && bv > 1.5 {
			color = Color{R: 1, G: 0.5, B: 0.2}
		} else {
			color = Color{R: 1, G: 0.6, B: 0.3}
		}
	case strings.Contains(spec, "WR"), strings.Contains(spec, "WC"), strings.Contains(spec, "WN"):
		color = Color{R: 0.7, G: 0.8, B: 1}
	}

	if hasBV {
		switch {
		case bv < -0.3:
			color = Color{R: 0.6, G: 0.7, B: 1}
		case bv < -0.1:
			color = Color{R: 0.8, G: 0.8, B: 1}
		case bv < 0.2:
			color = Color{R: 0.9, G: 0.9, B: 1}
		case bv < 0.5:
			color = Color{R: 1, G: 0.95, B: 0.9}
		case bv < 0.8:
			color = Color{R: 1, G: 0.9, B: 0.7}
		case bv < 1.2:
			color = Color{R: 1, G: 0.8, B: 0.5}
		case bv < 1.6:
			color = Color{R: 1, G: 0.7, B: 0.4}
		default:
			color = Color{R: 1, G: 0.6, B: 0.3}
		}
	}

	return color
}
