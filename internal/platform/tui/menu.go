package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MenuChoice is what the player picked in the menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceLeaderboard
	ChoiceQuit
)

// MenuItem represents a selectable menu entry.
type MenuItem struct {
	Choice MenuChoice
	Title  string
}

// PlayerStats is the profile summary shown in the menu.
type PlayerStats struct {
	Username    string
	HighScore   int
	GamesPlayed int
	Rank        int // 0 = not on the leaderboard
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	stats     PlayerStats
	offline   bool // No store: stats are not tracked
	keyMapper *KeyMapper
	choice    MenuChoice
}

// NewMenuModel creates a menu and loads the player's stats.
func NewMenuModel(deps Deps) MenuModel {
	deps = deps.withDefaults()
	m := MenuModel{
		items: []MenuItem{
			{Choice: ChoicePlay, Title: "Play"},
			{Choice: ChoiceLeaderboard, Title: "Leaderboard"},
			{Choice: ChoiceQuit, Title: "Quit"},
		},
		width:     deps.Runtime.ScreenW,
		height:    deps.Runtime.ScreenH,
		keyMapper: NewKeyMapper(),
	}
	m.stats, m.offline = loadStats(deps)
	return m
}

// loadStats reads the profile. Failures are logged and the menu shows
// the player as offline.
func loadStats(deps Deps) (PlayerStats, bool) {
	if deps.Store == nil || deps.PlayerID == "" {
		return PlayerStats{Username: deps.PlayerID}, true
	}

	p, err := deps.Store.EnsurePlayer(deps.PlayerID)
	if err != nil {
		deps.Logger.Warn("could not load player", "player", deps.PlayerID, "error", err)
		return PlayerStats{Username: deps.PlayerID}, true
	}

	rank, err := deps.Store.PlayerRank(p.ID)
	if err != nil {
		deps.Logger.Warn("could not load rank", "player", p.ID, "error", err)
	}

	return PlayerStats{
		Username:    p.Username,
		HighScore:   p.HighScore,
		GamesPlayed: p.GamesPlayed,
		Rank:        rank,
	}, false
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.choice = ChoiceQuit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		m.choice = m.items[m.cursor].Choice
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  F L A P G A T E  "), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = activeStyle.Render("> " + item.Title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) statsLine() string {
	if m.offline {
		return "Playing offline, scores are not saved"
	}
	rank := "-"
	if m.stats.Rank > 0 {
		rank = fmt.Sprintf("#%d", m.stats.Rank)
	}
	return fmt.Sprintf("%s  |  Best: %d  |  Rank: %s  |  Games: %d",
		m.stats.Username, m.stats.HighScore, rank, m.stats.GamesPlayed)
}

// Choice returns what the player picked, or ChoiceNone.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Stats returns the loaded player stats.
func (m MenuModel) Stats() PlayerStats {
	return m.stats
}
