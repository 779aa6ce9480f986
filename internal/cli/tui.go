package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/teasort/pkg/bench"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// BenchModel - Live benchmark view
// =============================================================================

type (
	benchRowMsg  bench.Row
	benchDoneMsg struct {
		report *bench.Report
		err    error
	}
	benchTickMsg time.Time
)

// BenchModel is the bubbletea model that shows benchmark rows as they are
// measured.
type BenchModel struct {
	Sizes  []int
	Rows   []bench.Row
	Report *bench.Report
	Err    error

	frame  int
	cancel context.CancelFunc
}

// NewBenchModel creates a model for a run over sizes. cancel is called when
// the user quits before the run finishes.
func NewBenchModel(sizes []int, cancel context.CancelFunc) BenchModel {
	return BenchModel{Sizes: sizes, cancel: cancel}
}

func benchTick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return benchTickMsg(t)
	})
}

func (m BenchModel) Init() tea.Cmd {
	return benchTick()
}

func (m BenchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
	case benchRowMsg:
		m.Rows = append(m.Rows, bench.Row(msg))
	case benchDoneMsg:
		m.Report, m.Err = msg.report, msg.err
		return m, tea.Quit
	case benchTickMsg:
		m.frame++
		return m, benchTick()
	}
	return m, nil
}

// Done reports whether the run has finished, successfully or not.
func (m BenchModel) Done() bool {
	return m.Report != nil || m.Err != nil
}

func (m BenchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Benchmark"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("q quit"))
	b.WriteString("\n\n")

	b.WriteString(rowsTable(m.Rows).Render())
	b.WriteString("\n\n")

	switch {
	case m.Err != nil:
		b.WriteString(styleIconError.Render(iconError) + " " + m.Err.Error())
	case m.Report != nil:
		b.WriteString(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf("growth %.3f", m.Report.Growth()))
	case len(m.Rows) < len(m.Sizes):
		frame := spinnerFrames[m.frame%len(spinnerFrames)]
		b.WriteString(styleIconSpinner.Render(frame) + " " +
			StyleDim.Render(fmt.Sprintf("measuring n=%d", m.Sizes[len(m.Rows)])))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", len(m.Rows), len(m.Sizes))))

	return b.String()
}

// runBenchTUI runs the benchmark in the background while the live view is
// shown on the alternate screen.
func runBenchTUI(ctx context.Context, runner *bench.Runner, opts bench.Options) (*bench.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewBenchModel(opts.Sizes(), cancel), tea.WithAltScreen())

	go func() {
		report, err := runner.Run(ctx, opts, func(row bench.Row) {
			p.Send(benchRowMsg(row))
		})
		p.Send(benchDoneMsg{report: report, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("bench view: %w", err)
	}
	m := final.(BenchModel)
	if !m.Done() {
		return nil, context.Canceled
	}
	return m.Report, m.Err
}

// =============================================================================
// Helpers
// =============================================================================

// rowsTable lays out benchmark rows the way the live view and --table show
// them.
func rowsTable(rows []bench.Row) *table.Table {
	data := make([][]string, len(rows))
	for i, r := range rows {
		status := iconFresh
		if r.Cached {
			status = iconCached
		}
		data[i] = []string{
			fmt.Sprintf("%d", r.N),
			fmt.Sprintf("%.1f", r.AvgCost),
			fmt.Sprintf("%.2fN", r.PerElement),
			fmt.Sprintf("%.3f", r.PerNLogN),
			formatDuration(r.Duration),
			status,
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("n", "Avg cost", "Cost/n", "Cost/n·lg n", "Time", "").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 0 || col == 2 {
				base = base.Align(lipgloss.Right)
			}
			if col == 5 {
				if row < len(rows) && rows[row].Cached {
					return base.Inherit(styleCached)
				}
				return base.Inherit(styleComputed)
			}
			if col == 2 {
				return base.Foreground(colorCyan)
			}
			return base.Foreground(colorWhite)
		})
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.Round(10 * time.Millisecond).String()
	}
}
