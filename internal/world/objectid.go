package world

import (
	"sync/atomic"

	"github.com/udisondev/statusfx/internal/model"
)

// Object ID ranges per actor kind. 0 is never issued.
const (
	playerIDBase uint32 = 0x10000000
	npcIDBase    uint32 = 0x20000000
)

// ObjectIDGenerator hands out actor IDs from a per-kind range.
// Safe for concurrent use.
type ObjectIDGenerator struct {
	players atomic.Uint32
	npcs    atomic.Uint32
}

// NewObjectIDGenerator creates a generator whose first IDs are base+1.
func NewObjectIDGenerator() *ObjectIDGenerator {
	gen := &ObjectIDGenerator{}
	gen.players.Store(playerIDBase)
	gen.npcs.Store(npcIDBase)
	return gen
}

// Next returns the next ID for kind. Unknown kinds draw from the NPC range.
func (g *ObjectIDGenerator) Next(kind model.ActorKind) uint32 {
	if kind == model.KindPlayer {
		return g.players.Add(1)
	}
	return g.npcs.Add(1)
}

// KindOf reports which range an object ID was issued from.
func KindOf(objectID uint32) (model.ActorKind, bool) {
	switch objectID &^ 0x0FFFFFFF {
	case playerIDBase:
		return model.KindPlayer, objectID != playerIDBase
	case npcIDBase:
		return model.KindNpc, objectID != npcIDBase
	default:
		return 0, false
	}
}
