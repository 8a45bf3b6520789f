package reward

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flapgate/internal/config"
	"github.com/vovakirdan/flapgate/internal/storage"
)

// memStore is an in-memory Store.
type memStore struct {
	claims  map[string]string // key -> code
	failHas error
}

func newMemStore() *memStore {
	return &memStore{claims: make(map[string]string)}
}

func claimKey(player, label, period string) string {
	return player + "|" + label + "|" + period
}

func (m *memStore) HasClaimed(player, label, period string) (bool, error) {
	if m.failHas != nil {
		return false, m.failHas
	}
	_, ok := m.claims[claimKey(player, label, period)]
	return ok, nil
}

func (m *memStore) ClaimReward(player, label, code, period string) error {
	key := claimKey(player, label, period)
	if _, ok := m.claims[key]; ok {
		return storage.ErrDuplicateClaim
	}
	m.claims[key] = code
	return nil
}

func newTestIssuer(store Store, now time.Time) *Issuer {
	return NewIssuer(config.Default().Rewards, store,
		WithRand(rand.New(rand.NewSource(1))),
		WithClock(func() time.Time { return now }),
		WithLogger(log.New(io.Discard)),
	)
}

func TestIssuerTierFor(t *testing.T) {
	i := newTestIssuer(newMemStore(), time.Now())

	tests := []struct {
		score    int
		expected string
	}{
		{0, ""},
		{4, ""},
		{5, "%5"},
		{9, "%5"},
		{10, "%10"},
		{25, "%10"},
		{26, "%13"},
		{999, "%13"},
	}

	for _, tc := range tests {
		tier, ok := i.TierFor(tc.score)
		if tc.expected == "" {
			if ok {
				t.Errorf("TierFor(%d) = %s, expected none", tc.score, tier.Label)
			}
			continue
		}
		if !ok || tier.Label != tc.expected {
			t.Errorf("TierFor(%d) = %q (ok=%v), expected %q", tc.score, tier.Label, ok, tc.expected)
		}
	}
}

func TestIssuerEvaluate(t *testing.T) {
	store := newMemStore()
	oct := time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)
	i := newTestIssuer(store, oct)
	ctx := context.Background()

	out, err := i.Evaluate(ctx, "pilot", 3)
	if err != nil || out.Kind != OutcomeNone {
		t.Errorf("score 3: got %+v, %v; expected none", out, err)
	}

	out, err = i.Evaluate(ctx, "pilot", 12)
	if err != nil {
		t.Fatalf("Evaluate() failed: %v", err)
	}
	if out.Kind != OutcomeWon || out.Label != "%10" {
		t.Fatalf("score 12: got %+v, expected a %%10 win", out)
	}
	codes := config.Default().Rewards[1].Codes
	if !slices.Contains(codes, out.Code) {
		t.Errorf("code %q not from the %%10 pool %v", out.Code, codes)
	}
	if store.claims[claimKey("pilot", "%10", "2026-10")] != out.Code {
		t.Error("claim was not recorded with the issued code")
	}

	out, _ = i.Evaluate(ctx, "pilot", 20)
	if out.Kind != OutcomeAlreadyClaimed || out.Label != "%10" || out.Code != "" {
		t.Errorf("second %%10 this month: got %+v, expected already claimed", out)
	}

	// Another label is still available
	out, _ = i.Evaluate(ctx, "pilot", 30)
	if out.Kind != OutcomeWon || out.Label != "%13" {
		t.Errorf("score 30: got %+v, expected a %%13 win", out)
	}

	// Another player is independent
	out, _ = i.Evaluate(ctx, "rookie", 12)
	if out.Kind != OutcomeWon {
		t.Errorf("other player: got %+v, expected a win", out)
	}
}

func TestIssuerNewMonth(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	oct := newTestIssuer(store, time.Date(2026, time.October, 31, 23, 59, 0, 0, time.UTC))
	if out, _ := oct.Evaluate(ctx, "pilot", 6); out.Kind != OutcomeWon {
		t.Fatalf("October: got %+v, expected win", out)
	}

	nov := newTestIssuer(store, time.Date(2026, time.November, 1, 0, 1, 0, 0, time.UTC))
	if out, _ := nov.Evaluate(ctx, "pilot", 6); out.Kind != OutcomeWon {
		t.Errorf("November: got %+v, expected a fresh win", out)
	}
}

func TestIssuerStoreRace(t *testing.T) {
	// HasClaimed says no but the insert loses to a concurrent claim
	store := &racyStore{memStore: newMemStore()}
	i := newTestIssuer(store, time.Now())

	out, err := i.Evaluate(context.Background(), "pilot", 5)
	if err != nil {
		t.Fatalf("Evaluate() failed: %v", err)
	}
	if out.Kind != OutcomeAlreadyClaimed {
		t.Errorf("got %+v, expected already claimed", out)
	}
}

type racyStore struct{ *memStore }

func (r *racyStore) HasClaimed(string, string, string) (bool, error) { return false, nil }

func (r *racyStore) ClaimReward(string, string, string, string) error {
	return storage.ErrDuplicateClaim
}

func TestIssuerErrors(t *testing.T) {
	store := newMemStore()
	store.failHas = errors.New("disk on fire")
	i := newTestIssuer(store, time.Now())

	if _, err := i.Evaluate(context.Background(), "pilot", 7); err == nil {
		t.Error("store failure should surface as an error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := i.Evaluate(ctx, "pilot", 7); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled context: got %v, expected context.Canceled", err)
	}
}

func TestIssuerClaimDirect(t *testing.T) {
	i := newTestIssuer(newMemStore(), time.Now())
	tier := config.RewardTier{Label: "%5", MinScore: 5, MaxScore: 9, Codes: []string{"ONLY"}}

	code, err := i.Claim("pilot", tier)
	if err != nil || code != "ONLY" {
		t.Fatalf("Claim() = %q, %v", code, err)
	}
	if _, err := i.Claim("pilot", tier); !errors.Is(err, ErrAlreadyClaimed) {
		t.Errorf("second Claim() error = %v, expected ErrAlreadyClaimed", err)
	}
	if _, err := i.Claim("pilot", config.RewardTier{Label: "empty"}); err == nil {
		t.Error("Claim() on a tier without codes should fail")
	}
}
