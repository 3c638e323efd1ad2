package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/ChristopherRabotin/sky"
	"github.com/ChristopherRabotin/sky/sgp4"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var ephemerisCmd = &cobra.Command{
	Use:   "ephemeris <body...>",
	Short: "Table of positions over a time span, as CSV",
	RunE:  runEphemeris,
}

func init() {
	flags := ephemerisCmd.Flags()
	flags.Duration("span", 24*time.Hour, "length of the table from --time")
	flags.Duration("step", time.Hour, "time between rows")
	flags.String("tle", "", "file of element sets to tabulate as well")
	flags.StringP("output", "o", "-", "CSV file, - for stdout")
}

var ephemerisHeader = []string{"time", "jd", "name", "ra", "dec", "alt", "az", "distance"}

// ephemerisRow is one position of the table. Angles are in degrees, the distance
// in AU for the bodies and km for the satellites.
type ephemerisRow struct {
	at               time.Time
	name             string
	ra, dec, alt, az float64
	distance         float64
}

func (r ephemerisRow) record() []string {
	f := func(x float64, prec int) string { return strconv.FormatFloat(x, 'f', prec, 64) }
	return []string{r.at.Format(time.RFC3339), f(sky.JD(r.at), 6), r.name, f(r.ra, 6), f(r.dec, 6), f(r.alt, 4), f(r.az, 4), f(r.distance, 8)}
}

// streamEphemeris writes the rows of the channel as they come, after a comment
// header, until it is closed.
func streamEphemeris(w io.Writer, start time.Time, rows <-chan ephemerisRow) error {
	if _, err := fmt.Fprintf(w, "# Creation date (UTC): %s\n# Angles in degrees, distances in AU (bodies) or km (satellites)\n# Start (UTC): %s\n",
		time.Now().UTC().Format(time.RFC3339), start.Format(time.RFC3339)); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(ephemerisHeader); err != nil {
		return err
	}
	n := 0
	for r := range rows {
		if err := cw.Write(r.record()); err != nil {
			return err
		}
		n++
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	level.Debug(sky.Logger()).Log("message", "ephemeris written", "rows", n)
	return nil
}

// tabulate sends the positions of every body and satellite at each step of the span
// and closes rows. A failing body stops the table.
func tabulate(sys *sky.SolarSystem, bodies []sky.Body, sats []*sgp4.Satellite, where *sky.Site, start time.Time, span, step time.Duration, rows chan<- ephemerisRow) error {
	defer close(rows)
	obs := sgp4.Observer{Lat: where.Lat, Lon: where.Lon, AltKm: where.HeightM / 1000}
	for dt := time.Duration(0); dt <= span; dt += step {
		at := start.Add(dt)
		jd := sky.JD(at)
		num := sky.NewNumbers(jd)
		for _, b := range bodies {
			if err := sys.Compute(b, num, where); err != nil {
				return errors.Wrapf(err, "%s at %s", b.Name(), at)
			}
			p := b.Position()
			r := ephemerisRow{at: at, name: b.Name(), ra: p.RA.Degrees(), dec: p.Dec.Degrees(), alt: p.Alt.Degrees(), az: p.Az.Degrees()}
			if d, ok := b.(interface{ Rearth() float64 }); ok {
				r.distance = d.Rearth()
			}
			rows <- r
		}
		for _, sat := range sats {
			p, err := sat.PositionAt(jd, obs)
			if err != nil {
				// A decayed satellite leaves a hole in the table.
				level.Warn(sky.Logger()).Log("sat", sat.Name(), "at", at, "err", err)
				continue
			}
			rows <- ephemerisRow{at: at, name: sat.Name(), ra: p.Sky.RA.Degrees(), dec: p.Sky.Dec.Degrees(),
				alt: p.Look.El.Degrees(), az: p.Look.Az.Degrees(), distance: p.Look.Range}
		}
	}
	return nil
}

func runEphemeris(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	span, _ := flags.GetDuration("span")
	step, _ := flags.GetDuration("step")
	if step <= 0 || span < 0 {
		return errors.Errorf("invalid span %s or step %s", span, step)
	}
	start, err := instant()
	if err != nil {
		return err
	}
	sys, err := sky.LoadSolarSystem()
	if err != nil {
		return err
	}
	var bodies []sky.Body
	for _, name := range splitNames(args) {
		b, err := newBody(sys, name)
		if err != nil {
			return err
		}
		bodies = append(bodies, b)
	}
	var sats []*sgp4.Satellite
	if path, _ := flags.GetString("tle"); path != "" {
		if sats, err = loadTLEs(path); err != nil {
			return err
		}
	}
	if len(bodies) == 0 && len(sats) == 0 {
		return errors.New("nothing to tabulate: name bodies or give --tle")
	}

	out := cmd.OutOrStdout()
	if path, _ := flags.GetString("output"); path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	rows := make(chan ephemerisRow, 64)
	done := make(chan error, 1)
	go func() {
		done <- tabulate(sys, bodies, sats, site(), start, span, step, rows)
	}()
	if err := streamEphemeris(out, start, rows); err != nil {
		// Drain so the producer can finish.
		for range rows {
		}
		<-done
		return err
	}
	return <-done
}
