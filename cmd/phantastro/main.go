// Command phantastro prints the astronomical timeline data the dashboard
// renders: the twilight tiling and sun/moon visibility for a location and a
// window of dates, the current moon phase, or a star catalog converted to
// the dashboard's JSON form.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	phantastro "github.com/thiemogries/phantastro-sub000"
	"github.com/thiemogries/phantastro-sub000/internal/stars"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

func main() {
	// No args or a leading flag runs timeline mode; otherwise the first arg
	// is a subcommand.
	if len(os.Args) < 2 || strings.HasPrefix(os.Args[1], "-") {
		runTimeline(os.Args[1:])
		return
	}

	switch os.Args[1] {
	case "timeline":
		runTimeline(os.Args[2:])
	case "phase":
		runPhase(os.Args[2:])
	case "stars":
		runStars(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `phantastro – observing-timeline data

Usage:
  phantastro [flags]           # twilight + visibility timeline (default mode)
  phantastro phase [flags]     # moon phase / illumination
  phantastro stars [flags]     # convert a SIMBAD catalog listing to JSON

Default mode flags (timeline):
  -lat float
        latitude in degrees (north positive)
  -lon float
        longitude in degrees (east positive, west negative)
  -date string
        first date of the window, YYYY-MM-DD (defaults to today, UTC)
  -days int
        number of days in the window (default 7)
  -body string
        visibility body: sun or moon (default "sun")
  -json
        output as JSON
`)
}

// ---------------------
// Timeline (default) mode
// ---------------------

type timelineOutput struct {
	Twilight   []phantastro.Segment `json:"twilight"`
	Visibility []phantastro.Segment `json:"visibility"`
}

func runTimeline(args []string) {
	fs := flag.NewFlagSet("phantastro", flag.ExitOnError)

	lat := fs.Float64("lat", 0, "latitude in degrees (north positive)")
	lon := fs.Float64("lon", 0, "longitude in degrees (east positive, west negative)")
	dateS := fs.String("date", "", "first date of the window, YYYY-MM-DD (defaults to today, UTC)")
	days := fs.Int("days", 7, "number of days in the window")
	bodyS := fs.String("body", "sun", "visibility body: sun or moon")
	jsonOut := fs.Bool("json", false, "output as JSON")

	if err := fs.Parse(args); err != nil {
		log.Fatal().Err(err).Msg("failed to parse flags")
	}

	if *lat == 0 && *lon == 0 {
		log.Warn().Msg("lat=0 lon=0 (Gulf of Guinea); use -lat and -lon to set a real location")
	}

	start := time.Now().UTC()
	if *dateS != "" {
		var err error
		start, err = phantastro.ParseDate(*dateS)
		if err != nil {
			log.Fatal().Err(err).Str("date", *dateS).Msg("invalid -date")
		}
	}
	if *days < 1 {
		log.Fatal().Int("days", *days).Msg("-days must be at least 1")
	}

	dates := make([]string, *days)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i).Format("2006-01-02")
	}

	var body phantastro.Body
	bodyLabel := "Sun"
	switch strings.ToLower(*bodyS) {
	case "sun":
		body = phantastro.Sun
	case "moon":
		body = phantastro.Moon
		bodyLabel = "Moon"
	default:
		log.Fatal().Str("body", *bodyS).Msg("unsupported body (use sun or moon)")
	}

	coords := phantastro.Coordinates{Lat: *lat, Lon: *lon}
	window, err := phantastro.NewWindow(dates)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build window")
	}

	twilight, err := phantastro.TwilightTimeline(coords, window, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("twilight timeline failed")
	}
	visibility, err := phantastro.VisibilityTimeline(body, coords, window, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("visibility timeline failed")
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(timelineOutput{Twilight: twilight, Visibility: visibility}); err != nil {
			log.Fatal().Err(err).Msg("failed to encode output")
		}
		return
	}

	fmt.Println("Twilight:")
	for _, s := range twilight {
		fmt.Printf("  %-12s %s\n", window.DayLabel(s.StartDay), s.Summary())
	}
	fmt.Printf("%s visibility:\n", bodyLabel)
	for _, s := range visibility {
		fmt.Printf("  %-12s %s\n", window.DayLabel(s.StartDay), s.Summary())
	}
}

// ---------------------
// Phase mode
// ---------------------

func runPhase(args []string) {
	fs := flag.NewFlagSet("phantastro phase", flag.ExitOnError)

	atS := fs.String("at", "", "instant to evaluate, RFC3339 (defaults to now)")
	jsonOut := fs.Bool("json", false, "output as JSON")

	if err := fs.Parse(args); err != nil {
		log.Fatal().Err(err).Msg("failed to parse flags")
	}

	at := time.Now()
	if *atS != "" {
		var err error
		at, err = time.Parse(time.RFC3339, *atS)
		if err != nil {
			log.Fatal().Err(err).Str("at", *atS).Msg("invalid -at")
		}
	}

	phase := phantastro.MoonPhaseAt(at)

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(phase); err != nil {
			log.Fatal().Err(err).Msg("failed to encode output")
		}
		return
	}

	fmt.Printf("%s: %s, %.0f%% illuminated (elongation %.1f°)\n",
		phase.Time.Format(time.RFC3339), phase.Name, phase.Fraction*100, phase.Elongation)
}

// ---------------------
// Stars mode
// ---------------------

func runStars(args []string) {
	fs := flag.NewFlagSet("phantastro stars", flag.ExitOnError)

	in := fs.String("in", "stars.txt", "SIMBAD catalog listing to read")
	maxMag := fs.Float64("max-mag", 6.5, "keep stars at or below this V magnitude")
	minDec := fs.Float64("min-dec", -10, "drop stars south of this declination (degrees)")

	if err := fs.Parse(args); err != nil {
		log.Fatal().Err(err).Msg("failed to parse flags")
	}

	f, err := os.Open(*in)
	if err != nil {
		log.Fatal().Err(err).Str("path", *in).Msg("failed to open catalog")
	}
	defer f.Close()

	filter := stars.Filter{MaxMagnitude: *maxMag}.WithMinDeclination(*minDec)
	catalog, err := stars.Parse(f, filter)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse catalog")
	}
	log.Info().Int("stars", len(catalog)).Str("path", *in).Msg("parsed catalog")

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(catalog); err != nil {
		log.Fatal().Err(err).Msg("failed to encode output")
	}
}
