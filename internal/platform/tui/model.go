package tui

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flapgate/internal/core"
	"github.com/vovakirdan/flapgate/internal/game"
	"github.com/vovakirdan/flapgate/internal/reward"
	"github.com/vovakirdan/flapgate/internal/storage"
)

// flashDuration is how long tier and milestone banners stay on screen.
const flashDuration = 1500 * time.Millisecond

type gamePhase int

const (
	phasePlaying gamePhase = iota
	phaseResult
)

// Summary is what the result screen shows once a run is over.
type Summary struct {
	Score   int
	Tier    game.Tier
	Result  storage.Result
	Rank    int // Leaderboard place after saving, 0 if unranked
	Outcome reward.Outcome
	Saved   bool // The score reached the store
}

// GameModel runs one session and its result screen.
type GameModel struct {
	deps       Deps
	session    *game.Session
	rng        *rand.Rand
	renderer   *game.Renderer
	screen     *core.Screen
	keyMapper  *KeyMapper
	phase      gamePhase
	summary    Summary
	flash      string
	flashColor core.Color
	flashUntil time.Time
	lastTick   time.Time
	now        func() time.Time // Input timestamps; ticks carry their own
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model with a fresh session.
func NewGameModel(deps Deps) GameModel {
	deps = deps.withDefaults()

	seed := deps.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	m := GameModel{
		deps:      deps,
		rng:       rng,
		renderer:  game.NewRenderer(),
		screen:    core.NewScreen(deps.Runtime.ScreenW, deps.Runtime.ScreenH),
		keyMapper: NewKeyMapper(),
		now:       time.Now,
	}
	m.session = game.NewSession(deps.Config, m.thresholds(), rng)
	return m
}

// thresholds loads the tier references from the leaderboard. Without a
// store every tier is measured against zero.
func (m GameModel) thresholds() game.Thresholds {
	if m.deps.Store == nil {
		return game.Thresholds{}
	}
	top, err := m.deps.Store.TopThresholds()
	if err != nil {
		m.deps.Logger.Warn("could not load tier thresholds", "error", err)
		return game.Thresholds{}
	}
	return game.ThresholdsFromScores(top[:])
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.deps.Runtime.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.phase == phasePlaying && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.session.Flap(m.now())
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.deps.Runtime.ScreenW = msg.Width
		m.deps.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if m.phase != phasePlaying {
			return m, nil
		}
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapGameKey(msg)

	switch action {
	case core.ActionQuit:
		m.session.Close()
		m.quitting = true
		return m, tea.Quit
	case core.ActionScreenshot:
		m.saveScreenshot()
		return m, nil
	}

	if m.phase == phaseResult {
		switch action {
		case core.ActionRestart, core.ActionConfirm:
			return m.restart()
		case core.ActionBack:
			m.session.Close()
			m.backToMenu = true
		}
		return m, nil
	}

	switch action {
	case core.ActionFlap, core.ActionConfirm:
		m.session.Flap(m.now())
	case core.ActionBack:
		m.session.Close()
		m.backToMenu = true
	}
	return m, nil
}

// restart begins a new run against refreshed thresholds.
func (m GameModel) restart() (tea.Model, tea.Cmd) {
	m.session.Reset(m.thresholds())
	m.phase = phasePlaying
	m.summary = Summary{}
	m.flash = ""
	m.lastTick = time.Time{}
	return m, tickCmd(m.deps.Runtime.TickRate)
}

// handleTick advances the session and reacts to its events.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.lastTick = now
	result := m.session.Tick(now)

	for _, ev := range result.Events {
		switch ev.Kind {
		case game.EventTierAchieved:
			m.setFlash(now, fmt.Sprintf("%s skin unlocked!", ev.Tier), game.TierColor(ev.Tier))
		case game.EventMilestone:
			m.setFlash(now, ev.Label, core.ColorBrightYellow)
		case game.EventCrashed:
			m.deps.Logger.Debug("crashed", "player", m.deps.PlayerID, "score", ev.Score, "cause", ev.Cause)
		case game.EventGameOver:
			m.finish(ev.Score)
			return m, nil
		}
	}

	return m, tickCmd(m.deps.Runtime.TickRate)
}

func (m *GameModel) setFlash(now time.Time, text string, c core.Color) {
	m.flash = text
	m.flashColor = c
	m.flashUntil = now.Add(flashDuration)
}

// finish reports the final score and switches to the result screen.
// Persistence and rewards are best-effort: failures are logged and the
// player still sees their score.
func (m *GameModel) finish(score int) {
	m.phase = phaseResult
	m.summary = Summary{Score: score, Tier: m.session.Snapshot().Tier}

	logger := m.deps.Logger
	if m.deps.Store != nil && m.deps.PlayerID != "" {
		m.record(score)
	}

	if m.deps.Issuer != nil && m.deps.PlayerID != "" {
		outcome, err := m.deps.Issuer.Evaluate(m.deps.Context, m.deps.PlayerID, score)
		if err != nil {
			logger.Warn("could not evaluate reward", "player", m.deps.PlayerID, "score", score, "error", err)
		}
		m.summary.Outcome = outcome
	}

	logger.Info("game over", "player", m.deps.PlayerID, "score", score, "tier", m.summary.Tier)
}

func (m *GameModel) record(score int) {
	store, logger, id := m.deps.Store, m.deps.Logger, m.deps.PlayerID

	if _, err := store.EnsurePlayer(id); err != nil {
		logger.Warn("could not create player", "player", id, "error", err)
		return
	}
	res, err := store.RecordResult(id, score)
	if err != nil {
		logger.Warn("could not save score", "player", id, "score", score, "error", err)
		return
	}
	m.summary.Result = res
	m.summary.Saved = true

	rank, err := store.PlayerRank(id)
	if err != nil {
		logger.Warn("could not load rank", "player", id, "error", err)
		return
	}
	m.summary.Rank = rank
}

// saveScreenshot saves the current frame to a file.
func (m *GameModel) saveScreenshot() {
	m.renderFrame()

	home, err := os.UserHomeDir()
	if err != nil {
		m.deps.Logger.Warn("could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".flapgate", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.deps.Logger.Warn("could not save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("flapgate_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.deps.Logger.Warn("could not save screenshot", "path", path, "error", err)
		return
	}
	m.deps.Logger.Info("screenshot saved", "path", path)
}

// renderFrame draws the session and any active banner into the screen buffer.
func (m *GameModel) renderFrame() {
	m.renderer.Render(m.screen, m.session.Snapshot())
	if m.flash != "" && m.lastTick.Before(m.flashUntil) {
		m.screen.DrawTextCentered(2, " "+m.flash+" ", m.flashColor)
	}
}

// View renders the game or the result screen.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	if m.phase == phaseResult {
		return m.resultView()
	}

	m.renderFrame()
	return RenderScreen(m.screen)
}

// resultView renders the end-of-run panel.
func (m GameModel) resultView() string {
	s := m.summary

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	goodStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	panelStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 3)

	row := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-10s", label)) + valueStyle.Render(value)
	}

	lines := []string{
		titleStyle.Render("GAME OVER"),
		"",
		row("Score", fmt.Sprintf("%d", s.Score)),
		row("Skin", s.Tier.String()),
	}

	if s.Saved {
		lines = append(lines, row("Best", fmt.Sprintf("%d", s.Result.HighScore)))
		if s.Rank > 0 {
			lines = append(lines, row("Rank", fmt.Sprintf("#%d", s.Rank)))
		}
		if s.Result.IsNewRecord {
			lines = append(lines, "", goodStyle.Render("New personal best!"))
		}
	}

	switch s.Outcome.Kind {
	case reward.OutcomeWon:
		lines = append(lines, "",
			goodStyle.Render(fmt.Sprintf("You won a %s reward!", s.Outcome.Label)),
			row("Code", s.Outcome.Code))
	case reward.OutcomeAlreadyClaimed:
		lines = append(lines, "",
			dimStyle.Render(fmt.Sprintf("%s reward already claimed this month", s.Outcome.Label)))
	}

	lines = append(lines, "", dimStyle.Render("R/Enter: Play again  |  B/Esc: Menu  |  Q: Quit"))

	panel := panelStyle.Render(strings.Join(lines, "\n"))
	w, h := m.deps.Runtime.ScreenW, m.deps.Runtime.ScreenH
	if w <= 0 || h <= 0 {
		return panel
	}
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, panel)
}

// Close releases the session.
func (m GameModel) Close() {
	m.session.Close()
}

// Summary returns the result of the last finished run.
func (m GameModel) Summary() Summary {
	return m.summary
}

// Finished reports whether the result screen is showing.
func (m GameModel) Finished() bool {
	return m.phase == phaseResult
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
