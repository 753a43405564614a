package tui

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/trackdrive/internal/driver"
	"github.com/san-kum/trackdrive/internal/vehicle"
)

const (
	historyLen   = 60
	throttleStep = 0.1
	maxSpeed     = 8.0
	minSpeed     = 0.125
)

type state int

const (
	stateMenu state = iota
	stateSim
)

// BuildFunc assembles a fresh vehicle for a named scenario.
type BuildFunc func(scenario string) (*vehicle.Vehicle, error)

type model struct {
	state     state
	cursor    int
	scenarios []string
	selected  string
	build     BuildFunc
	err       error

	vehicle   *vehicle.Vehicle
	snap      vehicle.Snapshot
	input     vehicle.Input
	driver    *driver.Manual
	paused    bool
	speed     float64
	heights   []float64
	rpms      []float64
	lastFrame time.Time
	fps       float64

	width  int
	height int
}

func newModel(scenarios []string, build BuildFunc) model {
	return model{
		state:     stateMenu,
		scenarios: scenarios,
		build:     build,
		driver:    driver.NewManual(),
		speed:     1,
		width:     80,
		height:    24,
	}
}

func (m model) Init() tea.Cmd { return nil }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.state != stateSim {
			return m, nil
		}
		now := time.Time(msg)
		if !m.paused && !m.lastFrame.IsZero() {
			elapsed := now.Sub(m.lastFrame).Seconds()
			if elapsed > 0 {
				m.fps = 1 / elapsed
			}
			m.advance(elapsed * m.speed)
		}
		m.lastFrame = now
		return m, tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateSim:
		return m.simKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.scenarios)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.scenarios) == 0 {
			return m, nil
		}
		m.selected = m.scenarios[m.cursor]
		if err := m.start(); err != nil {
			m.err = err
			return m, nil
		}
		m.state = stateSim
		return m, tea.Batch(tea.ClearScreen, tick())
	}
	return m, nil
}

func (m model) simKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		m.state = stateMenu
		m.vehicle = nil
		return m, tea.ClearScreen
	case " ", "p":
		m.paused = !m.paused
	case ".":
		if m.paused {
			m.stepOnce()
		}
	case "r":
		if err := m.start(); err != nil {
			m.err = err
		}
		return m, tea.ClearScreen
	case "up", "w":
		m.input.Throttle = math.Min(1, m.input.Throttle+throttleStep)
	case "down", "s":
		m.input.Throttle = math.Max(-1, m.input.Throttle-throttleStep)
	case "x":
		m.input.Throttle = 0
	case "b":
		if m.input.Brake > 0 {
			m.input.Brake = 0
		} else {
			m.input.Brake = 1
		}
	case "+", "=":
		m.speed = math.Min(m.speed*2, maxSpeed)
	case "-", "_":
		m.speed = math.Max(m.speed/2, minSpeed)
	case "0":
		m.speed = 1
	}
	m.driver.Set(m.input)
	if m.vehicle != nil {
		m.vehicle.SetInput(m.driver.Command(m.snap))
		m.input = m.vehicle.Input()
	}
	return m, nil
}

func (m *model) start() error {
	v, err := m.build(m.selected)
	if err != nil {
		return err
	}
	m.vehicle = v
	m.err = nil
	m.input = vehicle.Input{}
	m.driver.Set(m.input)
	m.paused = false
	m.speed = 1
	m.heights = make([]float64, 0, historyLen)
	m.rpms = make([]float64, 0, historyLen)
	m.lastFrame = time.Time{}
	m.record(v.Snapshot())
	return nil
}

// advance runs as many whole ticks as the elapsed sim time allows.
func (m *model) advance(elapsed float64) {
	if m.vehicle == nil {
		return
	}
	m.vehicle.SetInput(m.driver.Command(m.snap))
	if m.vehicle.Scheduler().Advance(elapsed) > 0 {
		m.record(m.vehicle.Snapshot())
	}
}

func (m *model) stepOnce() {
	if m.vehicle == nil {
		return
	}
	m.record(m.vehicle.Step())
}

func (m *model) record(s vehicle.Snapshot) {
	m.snap = s
	m.heights = appendBounded(m.heights, s.ChassisHeight)
	rpm := 0.0
	if len(s.Groups) > 0 {
		rpm = s.Groups[0].TrackRPM
	}
	m.rpms = appendBounded(m.rpms, rpm)
}

func appendBounded(xs []float64, v float64) []float64 {
	xs = append(xs, v)
	if len(xs) > historyLen {
		xs = xs[1:]
	}
	return xs
}

// Run starts the interactive viewer on the alternate screen.
func Run(scenarios []string, build BuildFunc) error {
	p := tea.NewProgram(newModel(scenarios, build), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
