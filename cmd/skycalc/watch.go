package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ChristopherRabotin/sky"
	"github.com/ChristopherRabotin/sky/sgp4"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

const minEvery = 100 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch <body...>",
	Short: "Live view of bodies and satellites",
	Long: "Recomputes the positions of the named bodies, and of the satellites of --tle, " +
		"at the wall clock time. Press r to refresh now and q to quit.",
	RunE: runWatch,
}

func init() {
	flags := watchCmd.Flags()
	flags.Duration("every", time.Second, "recomputation period")
	flags.String("metrics", "", "serve Prometheus metrics on this address, e.g. :9100")
	flags.String("tle", "", "file of element sets to watch as well")
}

type tickMsg time.Time

// watchModel is the bubbletea model of the live view.
type watchModel struct {
	sys     *sky.SolarSystem
	bodies  []sky.Body
	sats    []*sgp4.Satellite
	site    *sky.Site
	every   time.Duration
	limiter *rate.Limiter
	clock   func() time.Time

	at       time.Time
	rows     [][]row
	err      error
	computed int
}

func newWatchModel(sys *sky.SolarSystem, bodies []sky.Body, sats []*sgp4.Satellite, where *sky.Site, every time.Duration) *watchModel {
	if every < minEvery {
		every = minEvery
	}
	return &watchModel{
		sys:     sys,
		bodies:  bodies,
		sats:    sats,
		site:    where,
		every:   every,
		limiter: rate.NewLimiter(rate.Every(every), 1),
		clock:   time.Now,
	}
}

func (m *watchModel) tick() tea.Cmd {
	return tea.Tick(minEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init implements tea.Model.
func (m *watchModel) Init() tea.Cmd {
	m.recompute(true)
	return m.tick()
}

// Update implements tea.Model.
func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m.recompute(true)
		}
	case tickMsg:
		m.recompute(false)
		return m, m.tick()
	}
	return m, nil
}

// recompute computes every position at the current time. Ticks poll faster than
// the period and only go through when the limiter allows.
func (m *watchModel) recompute(force bool) {
	if !m.limiter.Allow() && !force {
		return
	}
	m.at = m.clock().UTC()
	jd := sky.JD(m.at)
	num := sky.NewNumbers(jd)
	m.err = nil
	m.rows = m.rows[:0]
	for _, b := range m.bodies {
		if err := m.sys.Compute(b, num, m.site); err != nil {
			m.err = err
			continue
		}
		m.rows = append(m.rows, append([]row{{"", b.Name()}}, bodyRows(b)[:4]...))
	}
	obs := sgp4.Observer{Lat: m.site.Lat, Lon: m.site.Lon, AltKm: m.site.HeightM / 1000}
	for _, sat := range m.sats {
		p, err := sat.PositionAt(jd, obs)
		if err != nil {
			m.err = err
			continue
		}
		rows := satRows(p)
		m.rows = append(m.rows, []row{{"", sat.Name()}, rows[0], rows[1], rows[2], rows[len(rows)-1]})
	}
	m.computed++
}

// View implements tea.Model.
func (m *watchModel) View() string {
	boxes := make([]string, len(m.rows))
	for i, rows := range m.rows {
		boxes[i] = render(rows[0].value, rows[1:])
	}
	var sb strings.Builder
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	sb.WriteString("\n")
	sb.WriteString(siteLine(m.site, m.at))
	sb.WriteString(dimStyle.Render(fmt.Sprintf("  #%d  r: refresh  q: quit", m.computed)))
	if m.err != nil {
		sb.WriteString("\n" + errorStyle.Render(m.err.Error()))
	}
	return sb.String() + "\n"
}

// serveMetrics exposes the metrics of both packages at addr/metrics.
func serveMetrics(addr string) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(sky.Collectors()...)
	reg.MustRegister(sgp4.Collectors()...)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	level.Info(sky.Logger()).Log("message", "serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		level.Error(sky.Logger()).Log("message", "metrics server stopped", "err", err)
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	path, _ := flags.GetString("tle")
	names := splitNames(args)
	if len(names) == 0 && path == "" {
		return errors.New("nothing to watch: name bodies or give --tle")
	}
	sys, err := sky.LoadSolarSystem()
	if err != nil {
		return err
	}
	bodies := make([]sky.Body, 0, len(names))
	for _, name := range names {
		b, err := newBody(sys, name)
		if err != nil {
			return err
		}
		bodies = append(bodies, b)
	}
	var sats []*sgp4.Satellite
	if path != "" {
		if sats, err = loadTLEs(path); err != nil {
			return err
		}
	}
	if addr, _ := flags.GetString("metrics"); addr != "" {
		go serveMetrics(addr)
	}
	// Logs would tear the full screen view.
	sky.SetLogger(nil)
	sgp4.SetLogger(nil)

	every, _ := flags.GetDuration("every")
	_, err = tea.NewProgram(newWatchModel(sys, bodies, sats, site(), every), tea.WithAltScreen()).Run()
	return err
}
