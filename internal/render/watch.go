package render

import (
	"context"
	"fmt"
	"io"
	"iter"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/spachava753/vacuumsim/internal/executor"
	"github.com/spachava753/vacuumsim/internal/models"
)

// Player pulls step records from a runner one at a time and keeps the frame
// state the renderers draw. The runner only advances when Advance is called.
type Player struct {
	title   string
	runner  *executor.Runner
	visited func(models.Position) bool

	next func() (models.StepRecord, error, bool)
	stop func()

	initial int
	steps   int
	cleans  int
	last    *models.StepRecord
	err     error
	done    bool
}

// NewPlayer prepares a player for a runner that has not taken any step yet.
// visited may be nil.
func NewPlayer(title string, runner *executor.Runner, visited func(models.Position) bool) *Player {
	next, stop := iter.Pull2(runner.Steps())
	return &Player{
		title:   title,
		runner:  runner,
		visited: visited,
		next:    next,
		stop:    stop,
		initial: runner.Grid().InitialDirt(),
	}
}

// Advance performs one step. It reports false once the trial is over.
func (p *Player) Advance() bool {
	if p.done {
		return false
	}
	rec, err, ok := p.next()
	if !ok {
		p.finish()
		return false
	}
	if err != nil {
		p.err = err
		p.finish()
		return false
	}
	p.steps = rec.Step
	if rec.Removed {
		p.cleans++
	}
	p.last = &rec
	if p.runner.Done() {
		p.finish()
		return false
	}
	return true
}

// Close releases the underlying iterator.
func (p *Player) Close() {
	p.stop()
}

func (p *Player) Done() bool { return p.done }
func (p *Player) Err() error { return p.err }

// Frame returns the current frame.
func (p *Player) Frame() Frame {
	f := Frame{
		Title:       p.title,
		Cells:       p.runner.Grid().Snapshot(),
		Agent:       p.runner.Position(),
		InitialDirt: p.initial,
		Steps:       p.steps,
		Cleans:      p.cleans,
		Last:        p.last,
		Err:         p.err,
		Visited:     p.visited,
	}
	if res, ok := p.runner.Result(); ok {
		f.Result = &res
	}
	return f
}

func (p *Player) finish() {
	p.done = true
	p.stop()
}

// Play writes every frame to w, one per step, waiting interval between steps.
func Play(ctx context.Context, w io.Writer, p *Player, interval time.Duration) error {
	defer p.Close()
	fmt.Fprintln(w, p.Frame().View())
	for !p.Done() {
		p.Advance()
		fmt.Fprintln(w, p.Frame().View())
		if p.Done() {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
	return p.Err()
}

type tickMsg time.Time

type watchModel struct {
	player   *Player
	interval time.Duration
	paused   bool
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m watchModel) Init() tea.Cmd {
	return tick(m.interval)
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
			if !m.paused && !m.player.Done() {
				return m, tick(m.interval)
			}
		case "n":
			if m.paused {
				m.player.Advance()
			}
		}
	case tickMsg:
		if m.paused || m.player.Done() {
			return m, nil
		}
		if m.player.Advance() {
			return m, tick(m.interval)
		}
	}
	return m, nil
}

func (m watchModel) View() string {
	help := "space: pause  n: step  q: quit"
	if m.player.Done() {
		help = "finished, q: quit"
	}
	return m.player.Frame().View() + "\n" + cleanStyle.Render(help) + "\n"
}

// Watch animates the trial in the terminal until the user quits.
func Watch(ctx context.Context, p *Player, interval time.Duration) error {
	defer p.Close()
	prog := tea.NewProgram(watchModel{player: p, interval: interval}, tea.WithContext(ctx))
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("running watch: %w", err)
	}
	return p.Err()
}
