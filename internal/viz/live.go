// Package viz provides a terminal live view of an outbreak: the state is
// stepped on a ticker and the compartment curves are redrawn each frame.
// Parameters can be nudged mid-run to see the epidemic respond.
package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/epi"
	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/model"
	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/solver"
)

const (
	graphWidth      = 80
	graphHeight     = 14
	historyCapacity = 600
)

type TickMsg time.Time

// Model holds the live simulation state and the curve history it draws.
type Model struct {
	def        *model.Definition
	stepper    *solver.RK4
	params     epi.Params
	initParams epi.Params
	x          epi.State
	x0         epi.State
	t, dt      float64
	population float64
	running    bool
	history    [][]float64
	paramKeys  []string
	selected   int
	showHelp   bool
}

// NewModel initializes the live view from a validated run setup.
func NewModel(def *model.Definition, x0 epi.State, params epi.Params, population, dt float64) Model {
	keys := def.RequiredParams()
	sort.Strings(keys)

	return Model{
		def:        def,
		stepper:    solver.NewRK4(),
		params:     params.Clone(),
		initParams: params.Clone(),
		x:          x0.Clone(),
		x0:         x0.Clone(),
		dt:         dt,
		population: population,
		running:    true,
		history:    make([][]float64, def.Dim()),
		paramKeys:  keys,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	f := func(t float64, x epi.State) epi.State {
		return m.def.Derivatives(t, x, m.params)
	}
	m.x = m.stepper.Step(f, m.x, m.t, m.dt)
	m.t += m.dt

	for i := range m.history {
		m.history[i] = append(m.history[i], m.x[i])
		if len(m.history[i]) > historyCapacity {
			m.history[i] = m.history[i][1:]
		}
	}
}

func (m *Model) reset() {
	m.x = m.x0.Clone()
	m.t = 0
	m.params = m.initParams.Clone()
	for i := range m.history {
		m.history[i] = nil
	}
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	m.params[key] *= factor
}

func (m Model) View() string {
	var sb strings.Builder

	status := "running"
	if !m.running {
		status = "paused"
	}
	sb.WriteString(headerStyle.Render(fmt.Sprintf("%s outbreak — t=%.1f (%s)", strings.ToUpper(string(m.def.Variant())), m.t, status)))
	sb.WriteByte('\n')

	var stats strings.Builder
	for i, name := range m.def.Compartments() {
		stats.WriteString(labelStyle.Render(name))
		stats.WriteString(valueStyle.Render(fmt.Sprintf("%10.1f", m.x[i])))
		stats.WriteByte('\n')
	}
	if beta, ok := m.params["beta"]; ok {
		if gamma, ok := m.params["gamma"]; ok && gamma > 0 {
			stats.WriteString(labelStyle.Render("R0"))
			stats.WriteString(valueStyle.Render(fmt.Sprintf("%10.2f", beta/gamma)))
			stats.WriteByte('\n')
		}
	}
	for i, key := range m.paramKeys {
		line := fmt.Sprintf("%-8s %8.4f", key, m.params[key])
		if i == m.selected {
			stats.WriteString(activeParamStyle.Render("> " + line))
		} else {
			stats.WriteString(valueStyle.Render("  " + line))
		}
		stats.WriteByte('\n')
	}
	sb.WriteString(statsStyle.Render(stats.String()))
	sb.WriteByte('\n')

	if len(m.history) > 0 && len(m.history[0]) > 1 {
		graph := asciigraph.PlotMany(m.history,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption(strings.Join(m.def.Compartments(), " / ")),
		)
		sb.WriteString(graphStyle.Render(graph))
		sb.WriteByte('\n')
	}

	help := "space pause · r reset · tab param · ↑/↓ adjust · q quit"
	if m.showHelp {
		help = "space: pause/resume  r: reset state and params  tab: select parameter  up/down: scale selected parameter by 5%  ?: toggle help  q: quit"
	}
	sb.WriteString(helpStyle.Render(help))
	sb.WriteByte('\n')

	return sb.String()
}
