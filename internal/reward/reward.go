// Package reward decides which coupon, if any, a finished game earns.
// Each reward label can be claimed once per player per calendar month.
package reward

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flapgate/internal/config"
	"github.com/vovakirdan/flapgate/internal/storage"
)

// PeriodLayout formats the claim period: one calendar month.
const PeriodLayout = "2006-01"

// ErrAlreadyClaimed is returned by Claim when the label was already taken this period.
var ErrAlreadyClaimed = errors.New("reward: already claimed this month")

// Store is the persistence the issuer needs. *storage.Store implements it.
type Store interface {
	HasClaimed(playerID, label, period string) (bool, error)
	ClaimReward(playerID, label, code, period string) error
}

var _ Store = (*storage.Store)(nil)

// OutcomeKind classifies an evaluation.
type OutcomeKind int

const (
	OutcomeNone           OutcomeKind = iota // Score below every tier
	OutcomeAlreadyClaimed                    // Tier reached, but claimed earlier this month
	OutcomeWon                               // New coupon handed out
)

// String returns a human-readable name for the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeNone:
		return "none"
	case OutcomeAlreadyClaimed:
		return "already_claimed"
	case OutcomeWon:
		return "won"
	default:
		return "unknown"
	}
}

// Outcome is the result of evaluating a finished game.
type Outcome struct {
	Kind  OutcomeKind
	Label string // Tier label, empty for OutcomeNone
	Code  string // Coupon code, only for OutcomeWon
}

// Issuer evaluates final scores against the configured reward tiers.
// It is safe for concurrent use by several SSH sessions.
type Issuer struct {
	tiers  []config.RewardTier
	store  Store
	mu     sync.Mutex // Guards rng
	rng    *rand.Rand
	now    func() time.Time
	logger *log.Logger
}

// Option configures an Issuer.
type Option func(*Issuer)

// WithRand sets the source used to pick coupon codes.
func WithRand(rng *rand.Rand) Option {
	return func(i *Issuer) { i.rng = rng }
}

// WithClock sets the clock used to derive the claim period.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

// WithLogger sets the logger for issued rewards.
func WithLogger(l *log.Logger) Option {
	return func(i *Issuer) { i.logger = l }
}

// NewIssuer creates an issuer for the given tiers.
func NewIssuer(tiers []config.RewardTier, store Store, opts ...Option) *Issuer {
	i := &Issuer{
		tiers:  tiers,
		store:  store,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// TierFor returns the reward tier a score falls in.
// When tiers overlap the last matching one wins.
func (i *Issuer) TierFor(score int) (config.RewardTier, bool) {
	var found config.RewardTier
	ok := false
	for _, t := range i.tiers {
		if t.Contains(score) {
			found, ok = t, true
		}
	}
	return found, ok
}

// Period returns the claim period for the current time.
func (i *Issuer) Period() string {
	return i.now().Format(PeriodLayout)
}

// Evaluate decides the reward for a finished game and records the claim.
func (i *Issuer) Evaluate(ctx context.Context, playerID string, score int) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	tier, ok := i.TierFor(score)
	if !ok {
		return Outcome{Kind: OutcomeNone}, nil
	}

	code, err := i.Claim(playerID, tier)
	if errors.Is(err, ErrAlreadyClaimed) {
		return Outcome{Kind: OutcomeAlreadyClaimed, Label: tier.Label}, nil
	}
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{Kind: OutcomeWon, Label: tier.Label, Code: code}, nil
}

// Claim picks a code from the tier's pool and records it for the current
// period. It returns ErrAlreadyClaimed when the label was taken already.
func (i *Issuer) Claim(playerID string, tier config.RewardTier) (string, error) {
	if len(tier.Codes) == 0 {
		return "", fmt.Errorf("reward: tier %s has no codes", tier.Label)
	}
	period := i.Period()

	claimed, err := i.store.HasClaimed(playerID, tier.Label, period)
	if err != nil {
		return "", fmt.Errorf("reward: cannot check claims: %w", err)
	}
	if claimed {
		return "", ErrAlreadyClaimed
	}

	code := i.pick(tier.Codes)
	err = i.store.ClaimReward(playerID, tier.Label, code, period)
	if errors.Is(err, storage.ErrDuplicateClaim) {
		return "", ErrAlreadyClaimed
	}
	if err != nil {
		return "", fmt.Errorf("reward: cannot record claim: %w", err)
	}

	i.logger.Info("reward issued", "player", playerID, "label", tier.Label, "period", period)
	return code, nil
}

func (i *Issuer) pick(codes []string) string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return codes[i.rng.Intn(len(codes))]
}
