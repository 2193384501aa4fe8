package solar

import (
	"testing"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclination(t *testing.T) {
	tests := []struct {
		name      string
		dayOfYear int
		want      float64
		tol       float64
	}{
		{"June solstice", 172, 23.45, 0.5},
		{"December solstice", 355, -23.45, 0.5},
		{"March equinox", 80, 0, 1.5},
		{"September equinox", 266, 0, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Declination(tt.dayOfYear), tt.tol)
		})
	}
}

func TestEquationOfTime(t *testing.T) {
	// Reference values from standard EoT tables; the second-order fit is
	// good to roughly a minute and a half.
	tests := []struct {
		name      string
		dayOfYear int
		want      float64 // minutes
	}{
		{"early November maximum", 307, 16.4},
		{"mid February minimum", 45, -14.2},
		{"mid April zero", 105, 0},
		{"mid June zero", 166, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, EquationOfTime(tt.dayOfYear), 1.5)
		})
	}
}

// TestCrossingTime_AgainstReference compares the closed-form sunrise/sunset
// against the go-sunrise reference implementation. The first-order formulas
// trade precision for simplicity, so the tolerance is generous.
func TestCrossingTime_AgainstReference(t *testing.T) {
	const toleranceMinutes = 15.0

	tests := []struct {
		name     string
		lat, lon float64
		date     time.Time
	}{
		{"New York late autumn", 40.7128, -74.0060, time.Date(2025, time.November, 30, 0, 0, 0, 0, time.UTC)},
		{"Hamburg midsummer", 53.5511, 9.9937, time.Date(2025, time.June, 23, 0, 0, 0, 0, time.UTC)},
		{"Quito equinox", -0.1807, -78.4678, time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)},
		{"Phoenix winter solstice", 33.4484, -112.0740, time.Date(2025, time.December, 21, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantRise, wantSet := sunrise.SunriseSunset(
				tt.lat, tt.lon, tt.date.Year(), tt.date.Month(), tt.date.Day())

			rise, ok := CrossingTime(tt.lat, tt.lon, tt.date, HorizonElevation, true)
			require.True(t, ok, "expected a sunrise")
			set, ok := CrossingTime(tt.lat, tt.lon, tt.date, HorizonElevation, false)
			require.True(t, ok, "expected a sunset")

			gotRise := rise.Time(tt.date)
			gotSet := set.Time(tt.date)

			assert.InDelta(t, 0, wantRise.Sub(gotRise).Minutes(), toleranceMinutes,
				"sunrise: got %v, reference %v", gotRise, wantRise)
			assert.InDelta(t, 0, wantSet.Sub(gotSet).Minutes(), toleranceMinutes,
				"sunset: got %v, reference %v", gotSet, wantSet)
		})
	}
}

func TestCrossingTime_RisingBeforeSetting(t *testing.T) {
	dates := []time.Time{
		time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.June, 23, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.October, 10, 0, 0, 0, 0, time.UTC),
	}
	elevations := []float64{HorizonElevation, CivilElevation}

	for _, date := range dates {
		for _, elev := range elevations {
			rise, okRise := CrossingTime(40.7128, -74.0060, date, elev, true)
			set, okSet := CrossingTime(40.7128, -74.0060, date, elev, false)
			require.True(t, okRise)
			require.True(t, okSet)
			assert.True(t, rise.Time(date).Before(set.Time(date)),
				"rise %v not before set %v on %v at %.0f°", rise, set, date, elev)
		}
	}
}

// TestCrossingTime_Polar checks that polar day and polar night come back as
// "no crossing", not as an error or a garbage instant.
func TestCrossingTime_Polar(t *testing.T) {
	summer := time.Date(2025, time.June, 21, 0, 0, 0, 0, time.UTC)
	winter := time.Date(2025, time.December, 21, 0, 0, 0, 0, time.UTC)

	for _, rising := range []bool{true, false} {
		_, ok := CrossingTime(78, 15, summer, HorizonElevation, rising)
		assert.False(t, ok, "midnight sun at 78°N should have no horizon crossing (rising=%v)", rising)

		_, ok = CrossingTime(78, 15, winter, HorizonElevation, rising)
		assert.False(t, ok, "polar night at 78°N should have no horizon crossing (rising=%v)", rising)
	}
}

// TestCrossingTime_DayRollover puts the observer just west of the antimeridian
// in UTC terms: solar noon lands right after 00:00 UTC, so the sunrise
// belongs to the previous UTC day.
func TestCrossingTime_DayRollover(t *testing.T) {
	date := time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)

	rise, ok := CrossingTime(0, 179, date, HorizonElevation, true)
	require.True(t, ok)
	assert.Equal(t, -1, rise.DayOffset)
	assert.InDelta(t, 18.2, rise.Hour, 0.5)

	set, ok := CrossingTime(0, 179, date, HorizonElevation, false)
	require.True(t, ok)
	assert.Equal(t, 0, set.DayOffset)
	assert.InDelta(t, 6.3, set.Hour, 0.5)
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		wantErr  bool
	}{
		{"valid", 53.5511, 9.9937, false},
		{"north pole", 90, 0, false},
		{"south pole", -90, 0, false},
		{"latitude too high", 90.001, 0, true},
		{"latitude too low", -91, 0, true},
		{"longitude too high", 0, 180.5, true},
		{"longitude too low", 0, -181, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinates(tt.lat, tt.lon)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCoordinates)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestElevationAt(t *testing.T) {
	// Quito, March equinox: the sun passes close to the zenith at local
	// solar noon and sits far below the horizon at local midnight.
	date := time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)
	noonUTC := 12.0 - (-78.4678)/15.0

	assert.Greater(t, ElevationAt(-0.1807, -78.4678, date, noonUTC), 80.0)
	assert.Less(t, ElevationAt(-0.1807, -78.4678, date, noonUTC+12), -80.0)
}
