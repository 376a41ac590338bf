package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/game"
	"github.com/SeamusWaldron/cubesim/internal/recorder"
	"github.com/SeamusWaldron/cubesim/internal/smartcube"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Interactive cube with solve timer",
	Long: `Start an interactive TUI showing the cube as an unfolded net.

Keyboard shortcuts:
  r l u d f b m e s   - Turn a layer clockwise
  R L U D F B M E S   - Turn a layer counter-clockwise (shift)
  ctrl+s              - Scramble and arm the timer
  ctrl+r              - Reset to solved
  space               - Pause or resume the timer
  q/esc               - Quit

Drag across a sticker with the mouse to turn the layer under it.
Scrambled attempts are recorded to the solve history.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	timerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// frameInterval drives the sequencer at about 60 frames per second.
const frameInterval = time.Second / 60

// Messages
type tickMsg time.Time
type smartMoveMsg struct{ move cubesim.Move }

// playModel is the bubbletea model shared by play and mirror.
type playModel struct {
	ctrl        *game.Controller
	seq         *cubesim.Sequencer
	session     *recorder.Session
	log         *logrus.Logger
	scrambleLen int

	// Smart cube, nil for play
	client *smartcube.Client
	moveCh chan cubesim.Move

	recent   []cubesim.Move
	err      error
	quitting bool
}

var _ game.Listener = (*playModel)(nil)

func newPlayModel(ctrl *game.Controller, session *recorder.Session, scrambleLen int, log *logrus.Logger) *playModel {
	m := &playModel{
		ctrl:        ctrl,
		seq:         ctrl.Sequencer(),
		session:     session,
		log:         log,
		scrambleLen: scrambleLen,
	}
	ctrl.AddListener(m)
	if session != nil {
		ctrl.AddListener(session)
	}
	return m
}

// attach feeds turns of a connected smart cube into the model.
func (m *playModel) attach(client *smartcube.Client) {
	m.client = client
	m.moveCh = make(chan cubesim.Move, 100)
	client.OnMove(func(mv cubesim.Move) {
		select {
		case m.moveCh <- mv:
		default:
			m.log.WithField("move", mv.Notation()).Warn("move channel full, dropping turn")
		}
	})
}

func (m *playModel) Scrambled([]cubesim.Move) { m.recent = nil }

func (m *playModel) Moved(mv cubesim.Move, _ time.Duration) { m.recent = append(m.recent, mv) }

func (m *playModel) Solved(time.Duration, int) {
	if m.client == nil {
		return
	}
	if err := m.client.SendCommand(smartcube.CmdFlashBacklight); err != nil {
		m.log.WithError(err).Debug("flash backlight")
	}
}

func (m *playModel) Reset() { m.recent = nil }

func (m *playModel) Init() tea.Cmd {
	if m.moveCh != nil {
		return tea.Batch(m.tickCmd(), m.listenForMoves())
	}
	return m.tickCmd()
}

func (m *playModel) tickCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *playModel) listenForMoves() tea.Cmd {
	return func() tea.Msg {
		return smartMoveMsg{move: <-m.moveCh}
	}
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			if m.client != nil {
				if err := m.client.Disconnect(); err != nil {
					m.log.WithError(err).Warn("disconnect")
				}
			}
			return m, tea.Quit

		case "ctrl+s":
			m.ctrl.Scramble(m.scrambleLen)

		case "ctrl+r":
			m.ctrl.Reset()
			// The physical cube is taken to match the reset net.
			if m.client != nil {
				if err := m.client.ResetSolved(); err != nil {
					m.err = err
				}
			}

		case " ":
			m.ctrl.TogglePause()

		default:
			m.ctrl.HandleKey(msg.String())
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tickMsg:
		m.seq.Tick(time.Time(msg))
		if m.session != nil && m.session.Err() != nil {
			m.err = m.session.Err()
		}
		return m, m.tickCmd()

	case smartMoveMsg:
		m.ctrl.Turn(msg.move)
		return m, m.listenForMoves()
	}

	return m, nil
}

func (m *playModel) handleMouse(msg tea.MouseMsg) {
	px := float64(msg.X * pixelsPerColumn)
	py := float64(msg.Y * pixelsPerRow)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		hit, ok := stickerHit(m.seq.Cube(), msg.X, msg.Y)
		if !ok {
			return
		}
		m.ctrl.PointerDown(hit, px, py)

	case tea.MouseActionMotion:
		m.ctrl.PointerMove(px, py)

	case tea.MouseActionRelease:
		m.ctrl.PointerUp()
	}
}

func (m *playModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder

	// Title; the net is drawn from row netTop.
	title := "cubesim"
	if m.client != nil {
		title += " - " + m.client.DeviceName()
		if battery := m.client.Battery(); battery >= 0 {
			title += fmt.Sprintf(" (Battery: %d%%)", battery)
		}
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	cube := m.seq.Cube()
	var turning, preview map[*cubesim.Cubie]bool
	if mv, _, ok := m.seq.Active(); ok {
		turning = layerSet(cube, mv.Face)
	}
	if d := m.ctrl.ActiveDrag(); d != nil && d.Preview != nil {
		preview = layerSet(cube, d.Preview.Face)
	}
	b.WriteString(renderNet(cube, turning, preview))
	b.WriteString("\n")

	timer := m.ctrl.Timer()
	b.WriteString(timerStyle.Render(timer.Format()))
	b.WriteString(fmt.Sprintf("  Moves: %d", timer.MoveCount()))
	if mv, angle, ok := m.seq.Active(); ok {
		b.WriteString(statusStyle.Render(fmt.Sprintf("  turning %s %+.0f°", mv.Notation(), angle*180/math.Pi)))
	}
	if n := m.seq.QueueLen(); n > 0 {
		b.WriteString(statusStyle.Render(fmt.Sprintf("  queued: %d", n)))
	}
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.ctrl.Status()))
	if m.ctrl.IsScrambled() && m.ctrl.Phase() < cubesim.PhaseSolved {
		b.WriteString(statusStyle.Render("  Working on: " + (m.ctrl.Phase() + 1).DisplayName()))
	}
	b.WriteString("\n\n")

	if len(m.recent) > 0 {
		start := 0
		if len(m.recent) > 20 {
			start = len(m.recent) - 20
			b.WriteString("... ")
		}
		b.WriteString(moveStyle.Render(cubesim.FormatMoves(m.recent[start:])))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Keys: rludfbmes=turn (shift=reverse)  ctrl+s=scramble  ctrl+r=reset  space=pause  q=quit"))
	b.WriteString("\n")

	return b.String()
}

// playSetup holds what play and mirror share.
type playSetup struct {
	model     *playModel
	session   *recorder.Session
	stateFile *recorder.StateFile
	close     func()
}

func setupPlay(source string) (*playSetup, error) {
	stateFile, err := loadState()
	if err != nil {
		return nil, err
	}
	state := stateFile.State()

	log, logFile, err := newLogger(true)
	if err != nil {
		return nil, err
	}

	db, err := openDB(state)
	if err != nil {
		logFile.Close()
		return nil, err
	}

	seq := cubesim.NewSequencer(cubesim.NewCube(), sequencerOptions(state, log)...)
	ctrl := game.New(seq, time.Now, log)

	session := recorder.NewSession(db, stateFile, log)
	session.SetSource(source)
	session.SetAppVersion(version)

	// A solve left open by a previous run can no longer be finished.
	if state.ActiveSolveID != "" {
		log.WithField("solve_id", state.ActiveSolveID).Info("clearing stale active solve")
		if err := stateFile.ClearActiveSolve(); err != nil {
			log.WithError(err).Warn("failed to save state")
		}
	}

	model := newPlayModel(ctrl, session, scrambleLength(state), log)
	return &playSetup{
		model:     model,
		session:   session,
		stateFile: stateFile,
		close: func() {
			session.Close()
			db.Close()
			logFile.Close()
		},
	}, nil
}

func runProgram(model *playModel) error {
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	setup, err := setupPlay("keyboard")
	if err != nil {
		return err
	}
	defer setup.close()

	if err := runProgram(setup.model); err != nil {
		return err
	}

	if id := setup.session.SolveID(); id != "" {
		fmt.Printf("Last solve: %s (%s)\n", id, setup.session.State())
	}
	return nil
}
