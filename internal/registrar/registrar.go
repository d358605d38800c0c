package registrar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"go-player-tracker/internal/interfaces"
	"go-player-tracker/internal/metrics"
	"go-player-tracker/internal/models"
)

var _ interfaces.PlayerResolver = (*Registrar)(nil)

// MaxNameLength is the longest accepted player name, in runes
const MaxNameLength = 12

// ErrInvalidName is returned for names that are empty or too long
var ErrInvalidName = errors.New("invalid player name")

// Registrar resolves player names to registered players, registering players
// that exist upstream on first sight
type Registrar struct {
	players interfaces.PlayerRepository
	checker interfaces.ExistenceChecker
	clock   clockwork.Clock
	logger  *zap.Logger
}

// New creates a Registrar
func New(players interfaces.PlayerRepository, checker interfaces.ExistenceChecker, clock clockwork.Clock, logger *zap.Logger) *Registrar {
	return &Registrar{
		players: players,
		checker: checker,
		clock:   clock,
		logger:  logger,
	}
}

// Canonicalize trims and lower-cases a player name
func Canonicalize(name string) (string, error) {
	canonical := strings.ToLower(strings.TrimSpace(name))
	if canonical == "" || utf8.RuneCountInString(canonical) > MaxNameLength {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return canonical, nil
}

// Ensure returns the registered player for name. Unknown names are checked
// upstream; found=false with a nil error means the player does not exist.
func (r *Registrar) Ensure(ctx context.Context, name string) (*models.Player, bool, error) {
	username, err := Canonicalize(name)
	if err != nil {
		return nil, false, err
	}

	player, found, err := r.players.FindPlayer(ctx, username)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up player: %w", err)
	}
	if found {
		return player, true, nil
	}

	exists, err := r.checker.CheckExistence(ctx, []string{username})
	if err != nil {
		return nil, false, fmt.Errorf("failed to check player existence: %w", err)
	}
	if !exists[username] {
		r.logger.Debug("Player does not exist upstream", zap.String("player", username))
		return nil, false, nil
	}

	player, err = r.players.CreatePlayer(ctx, username, r.clock.Now())
	if err != nil {
		return nil, false, fmt.Errorf("failed to register player: %w", err)
	}

	metrics.RecordPlayerRegistered()
	r.logger.Info("Registered player", zap.String("player", username), zap.Int64("id", player.ID))
	return player, true, nil
}
