package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/ChristopherRabotin/sky"
	"github.com/ChristopherRabotin/sky/sgp4"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle = lipgloss.NewStyle().Width(14).Foreground(lipgloss.Color("39"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1)
)

// instant returns the time of site.time, now when it is empty.
func instant() (time.Time, error) {
	s := v.GetString("site.time")
	if s == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid time %q", s)
	}
	return t.UTC(), nil
}

func site() *sky.Site {
	return &sky.Site{
		Lat:     sky.Deg(v.GetFloat64("site.latitude")),
		Lon:     sky.Deg(v.GetFloat64("site.longitude")),
		HeightM: v.GetFloat64("site.height"),
	}
}

func observer() sgp4.Observer {
	return sgp4.NewObserver(v.GetFloat64("site.latitude"), v.GetFloat64("site.longitude"), v.GetFloat64("site.height"))
}

// newBody returns the body called name, planets reading their theory from sys.
func newBody(sys *sky.SolarSystem, name string) (sky.Body, error) {
	k, err := sky.KindFromString(name)
	if err != nil {
		return nil, err
	}
	switch k {
	case sky.KindSun:
		return sky.NewSun(), nil
	case sky.KindMoon:
		return sky.NewMoon(), nil
	case sky.KindPluto:
		return sky.NewPluto(), nil
	case sky.KindEarthShadow:
		return sky.NewEarthShadow(sky.NewMoon()), nil
	case sky.KindEarth:
		return nil, errors.Wrap(sky.ErrUnknownBody, "the observer stands on the Earth")
	}
	return sys.NewPlanet(k)
}

// moonsOf returns the satellite system of a planet, nil when none is modelled.
func moonsOf(k sky.Kind) *sky.PlanetMoons {
	switch k {
	case sky.KindJupiter:
		return sky.NewJupiterMoons()
	case sky.KindSaturn:
		return sky.NewSaturnMoons()
	}
	return nil
}

// row is one labelled line of a result box.
type row struct {
	label, value string
}

func render(title string, rows []row) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, titleStyle.Render(title))
	for _, r := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(r.label), valueStyle.Render(r.value)))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// bodyRows describes the place of b as last computed.
func bodyRows(b sky.Body) []row {
	p := b.Position()
	rows := []row{
		{"RA", p.RA.HMSString()},
		{"Dec", p.Dec.String()},
		{"Alt", fmt.Sprintf("%.3f°", p.Alt.Degrees())},
		{"Az", fmt.Sprintf("%.3f°", p.Az.Degrees())},
		{"RA (J2000)", p.RA0.HMSString()},
		{"Dec (J2000)", p.Dec0.String()},
	}
	if sb, ok := b.(interface {
		Rearth() float64
		AngularSize() float64
		Magnitude() float64
		IlluminatedFraction() float64
	}); ok {
		rows = append(rows,
			row{"Distance", fmt.Sprintf("%.6f AU", sb.Rearth())},
			row{"Size", fmt.Sprintf("%.2f'", sb.AngularSize())},
			row{"Magnitude", fmt.Sprintf("%.2f", sb.Magnitude())},
			row{"Illuminated", fmt.Sprintf("%.1f%%", 100*sb.IlluminatedFraction())},
		)
	}
	if es, ok := b.(*sky.EarthShadow); ok {
		rows = append(rows, row{"Eclipse", es.EclipseType().String()})
	}
	return rows
}

func satRows(p *sgp4.Position) []row {
	visible := "no"
	switch {
	case p.Visible:
		visible = "yes"
	case p.Eclipsed:
		visible = "eclipsed"
	case p.Look.El.Degrees() < 0:
		visible = "below the horizon"
	case p.SunEl.Degrees() > -12:
		visible = "daylight"
	}
	return []row{
		{"Az", fmt.Sprintf("%.3f°", p.Look.Az.Degrees())},
		{"El", fmt.Sprintf("%.3f°", p.Look.El.Degrees())},
		{"Range", fmt.Sprintf("%.1f km", p.Look.Range)},
		{"Range rate", fmt.Sprintf("%.3f km/s", p.Look.RangeRate)},
		{"RA", p.Sky.RA.HMSString()},
		{"Dec", p.Sky.Dec.String()},
		{"Sub-point", fmt.Sprintf("%.3f° %.3f°", p.Lat.Degrees(), p.Lon.Degrees())},
		{"Altitude", fmt.Sprintf("%.1f km", p.AltitudeKm)},
		{"Velocity", fmt.Sprintf("%.3f km/s", p.Velocity)},
		{"Sun el", fmt.Sprintf("%.2f°", p.SunEl.Degrees())},
		{"Visible", visible},
	}
}

func siteLine(s *sky.Site, t time.Time) string {
	return dimStyle.Render(fmt.Sprintf("%s  lat %.4f° lon %.4f° %.0f m", t.Format(time.RFC3339), s.Lat.Degrees(), s.Lon.Degrees(), s.HeightM))
}

// splitNames accepts names given as separate arguments or comma separated.
func splitNames(args []string) []string {
	var names []string
	for _, a := range args {
		for _, n := range strings.Split(a, ",") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
	}
	return names
}
