package stattables

//go:generate mockgen -destination=mock/mock_repository.go -package=mockstattables -source=repository.go

import (
	"context"
	"time"

	"github.com/KirkDiggler/creature-battler/internal/domain/shared"
	"github.com/KirkDiggler/creature-battler/internal/domain/stats"
)

// Record is a creature's stat table as it stood at the end of a battle
type Record struct {
	BattleID string          `json:"battle_id"`
	EntityID shared.EntityID `json:"entity_id"`
	Template string          `json:"template"`
	Team     shared.TeamID   `json:"team"`
	Health   int             `json:"health"`
	Snapshot stats.Snapshot  `json:"snapshot"`
	SavedAt  time.Time       `json:"saved_at"`
}

// Repository defines the interface for stat snapshot storage
type Repository interface {
	// Save stores or replaces a record
	Save(ctx context.Context, record *Record) error

	// Get retrieves one creature's record
	Get(ctx context.Context, battleID string, entityID shared.EntityID) (*Record, error)

	// ListByBattle retrieves every record of a battle ordered by entity ID
	ListByBattle(ctx context.Context, battleID string) ([]*Record, error)

	// DeleteBattle removes every record of a battle
	DeleteBattle(ctx context.Context, battleID string) error
}

// TimeProvider stamps records that arrive without SavedAt
type TimeProvider interface {
	Now() time.Time
}

type systemTime struct{}

func (systemTime) Now() time.Time { return time.Now().UTC() }

func validate(record *Record) error {
	if record == nil {
		return errRecordRequired
	}
	if record.BattleID == "" {
		return errBattleIDRequired
	}
	if record.EntityID == "" {
		return errEntityIDRequired
	}
	return nil
}
