package tui

import (
	"context"
	"io"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flapgate/internal/config"
	"github.com/vovakirdan/flapgate/internal/core"
	"github.com/vovakirdan/flapgate/internal/game"
	"github.com/vovakirdan/flapgate/internal/reward"
	"github.com/vovakirdan/flapgate/internal/storage"
)

const testPlayer = "pilot@example.com"

var epoch = time.Unix(1700000000, 0)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "flapgate.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testDeps(t *testing.T, withStore bool) Deps {
	t.Helper()
	cfg := config.Default()
	cfg.Timing.GraceDelay = 100 * time.Millisecond

	logger := log.New(io.Discard)
	deps := Deps{
		Config:   cfg,
		Runtime:  core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7},
		PlayerID: testPlayer,
		Logger:   logger,
		Context:  context.Background(),
	}
	if withStore {
		store := openTestStore(t)
		deps.Store = store
		deps.Issuer = reward.NewIssuer(cfg.Rewards, store,
			reward.WithRand(rand.New(rand.NewSource(1))),
			reward.WithClock(func() time.Time { return epoch }),
			reward.WithLogger(logger),
		)
	}
	return deps
}

func newTestGameModel(t *testing.T, withStore bool) GameModel {
	t.Helper()
	m := NewGameModel(testDeps(t, withStore))
	m.now = func() time.Time { return epoch }
	return m
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T, expected GameModel", next)
	}
	return gm, cmd
}

// playUntilOver flaps once and ticks at 60Hz until the result screen shows.
func playUntilOver(t *testing.T, m GameModel) GameModel {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.session.Status() != game.StatusPlaying {
		t.Fatalf("status after flap = %s, expected Playing", m.session.Status())
	}
	for i := 1; i < 10000; i++ {
		var cmd tea.Cmd
		m, cmd = update(t, m, TickMsg(epoch.Add(time.Duration(i)*time.Second/60)))
		if m.Finished() {
			if cmd != nil {
				t.Error("tick loop should stop on the result screen")
			}
			return m
		}
		if cmd == nil {
			t.Fatalf("tick %d: tick loop stopped while playing", i)
		}
	}
	t.Fatal("game never ended")
	return m
}

func TestGameModelRecordsResult(t *testing.T) {
	m := newTestGameModel(t, true)
	m = playUntilOver(t, m)

	s := m.Summary()
	if !s.Saved {
		t.Fatal("expected the result to be saved")
	}
	if s.Result.HighScore != s.Score {
		t.Errorf("high score = %d, expected %d", s.Result.HighScore, s.Score)
	}

	p, err := m.deps.Store.Player(testPlayer)
	if err != nil {
		t.Fatalf("Player() failed: %v", err)
	}
	if p.GamesPlayed != 1 {
		t.Errorf("games played = %d, expected 1", p.GamesPlayed)
	}
	if s.Rank != 1 {
		t.Errorf("rank = %d, expected 1", s.Rank)
	}
	if m.View() == "" {
		t.Error("result view is empty")
	}
}

func TestGameModelWithoutStore(t *testing.T) {
	m := newTestGameModel(t, false)
	m = playUntilOver(t, m)

	s := m.Summary()
	if s.Saved {
		t.Error("nothing should be saved without a store")
	}
	if s.Outcome.Kind != reward.OutcomeNone {
		t.Errorf("outcome = %s, expected None", s.Outcome.Kind)
	}
}

func TestGameModelFinishIssuesReward(t *testing.T) {
	m := newTestGameModel(t, true)

	m.finish(12)
	s := m.Summary()
	if s.Outcome.Kind != reward.OutcomeWon {
		t.Fatalf("outcome = %s, expected Won", s.Outcome.Kind)
	}
	if s.Outcome.Label != "%10" || s.Outcome.Code == "" {
		t.Errorf("got %+v, expected a %%10 code", s.Outcome)
	}
	if !s.Result.IsNewRecord {
		t.Error("first score should be a new record")
	}

	m.finish(15)
	if got := m.Summary().Outcome.Kind; got != reward.OutcomeAlreadyClaimed {
		t.Errorf("second win in the month: got %s, expected AlreadyClaimed", got)
	}
}

func TestGameModelResultKeys(t *testing.T) {
	m := newTestGameModel(t, false)
	m = playUntilOver(t, m)

	// Flap keys do not restart
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if !m.Finished() {
		t.Fatal("space should not leave the result screen")
	}

	m, cmd := update(t, m, runeKey("r"))
	if m.Finished() {
		t.Fatal("r should start a new run")
	}
	if cmd == nil {
		t.Error("restart should resume ticking")
	}
	if m.session.Status() != game.StatusIdle || m.session.Score() != 0 {
		t.Errorf("after restart: status %s score %d", m.session.Status(), m.session.Score())
	}

	m = playUntilOver(t, m)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("esc should return to the menu")
	}
	if !m.session.Closed() {
		t.Error("leaving should close the session")
	}
}

func TestGameModelQuitClosesSession(t *testing.T) {
	m := newTestGameModel(t, false)
	m, cmd := update(t, m, runeKey("q"))
	if !m.IsQuitting() {
		t.Error("expected quitting")
	}
	if cmd == nil {
		t.Error("expected tea.Quit command")
	}
	if !m.session.Closed() {
		t.Error("quit should close the session")
	}
	if m.View() != "" {
		t.Error("quitting view should be empty")
	}
}

func TestGameModelMouseFlap(t *testing.T) {
	m := newTestGameModel(t, false)

	m, _ = update(t, m, tea.MouseMsg{Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	if m.session.Status() != game.StatusIdle {
		t.Fatal("mouse motion should not flap")
	}

	m, _ = update(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.session.Status() != game.StatusPlaying {
		t.Errorf("status = %s, expected Playing after click", m.session.Status())
	}
}

func TestGameModelResize(t *testing.T) {
	m := newTestGameModel(t, false)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 12})
	if m.screen.Width() != 40 || m.screen.Height() != 12 {
		t.Errorf("screen = %dx%d, expected 40x12", m.screen.Width(), m.screen.Height())
	}
	if m.View() == "" {
		t.Error("view is empty")
	}
}
