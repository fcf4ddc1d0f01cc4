package stattables

import (
	"github.com/KirkDiggler/creature-battler/internal/domain/shared"
	battleErr "github.com/KirkDiggler/creature-battler/internal/errors"
)

var (
	errRecordRequired   = battleErr.InvalidArgumentf("record cannot be nil")
	errBattleIDRequired = battleErr.InvalidArgumentf("battle ID cannot be empty")
	errEntityIDRequired = battleErr.InvalidArgumentf("entity ID cannot be empty")
)

func notFound(battleID string, entityID shared.EntityID) error {
	return battleErr.NotFoundf("stat table %s/%s not found", battleID, entityID).
		WithMeta("battle_id", battleID).
		WithMeta("entity_id", string(entityID))
}
