package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flapgate/internal/config"
	"github.com/vovakirdan/flapgate/internal/core"
	"github.com/vovakirdan/flapgate/internal/reward"
	"github.com/vovakirdan/flapgate/internal/storage"
)

// Deps bundles everything the screens need.
type Deps struct {
	Config   config.Config
	Runtime  core.RuntimeConfig
	Store    *storage.Store // nil runs without persistence
	Issuer   *reward.Issuer // nil disables rewards
	PlayerID string
	Logger   *log.Logger
	Context  context.Context // Cancelled when the player disconnects
}

// withDefaults fills in the optional fields.
func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = log.New(io.Discard)
	}
	if d.Context == nil {
		d.Context = context.Background()
	}
	if d.Runtime.ScreenW <= 0 || d.Runtime.ScreenH <= 0 {
		def := core.DefaultConfig()
		d.Runtime.ScreenW, d.Runtime.ScreenH = def.ScreenW, def.ScreenH
	}
	if d.Runtime.TickRate <= 0 {
		d.Runtime.TickRate = d.Config.Timing.NominalFPS
	}
	return d
}

type appView int

const (
	viewMenu appView = iota
	viewGame
	viewLeaderboard
)

// AppModel manages the full flow: menu -> game -> result -> menu, plus the leaderboard.
// It is the top-level model for both local play and SSH sessions.
type AppModel struct {
	deps     Deps
	view     appView
	menu     MenuModel
	game     *GameModel
	board    LeaderboardModel
	quitting bool
}

// NewAppModel creates the top-level model, starting at the menu.
func NewAppModel(deps Deps) AppModel {
	deps = deps.withDefaults()
	return AppModel{
		deps: deps,
		view: viewMenu,
		menu: NewMenuModel(deps),
	}
}

// Init initializes the app.
func (m AppModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the app.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.deps.Runtime.ScreenW = wsm.Width
		m.deps.Runtime.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewLeaderboard:
		return m.updateLeaderboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch m.menu.Choice() {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case ChoicePlay:
		gm := NewGameModel(m.deps)
		m.game = &gm
		m.view = viewGame
		return m, m.game.Init()

	case ChoiceLeaderboard:
		m.board = NewLeaderboardModel(m.deps.Store, m.deps.PlayerID, m.deps.Runtime.ScreenW, m.deps.Runtime.ScreenH)
		m.view = viewLeaderboard
		return m, m.board.Init()
	}

	return m, cmd
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.game = nil
		m.backToMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

func (m AppModel) updateLeaderboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.board.Update(msg)
	if board, ok := newBoard.(LeaderboardModel); ok {
		m.board = board
	}

	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.board.IsGoingBack() {
		m.backToMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// backToMenu rebuilds the menu so that stats are fresh.
func (m *AppModel) backToMenu() {
	m.menu = NewMenuModel(m.deps)
	m.view = viewMenu
}

// View renders the current view.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		return m.game.View()
	case viewLeaderboard:
		return m.board.View()
	default:
		return m.menu.View()
	}
}

// Close releases the running game session, if any.
func (m AppModel) Close() {
	if m.game != nil {
		m.game.Close()
	}
}

// Run starts the full local program.
func Run(deps Deps) error {
	p := tea.NewProgram(
		NewAppModel(deps),
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse clicks flap
	)

	final, err := p.Run()
	if app, ok := final.(AppModel); ok {
		app.Close()
	}
	return err
}
