package model

import (
	"sync"

	"github.com/udisondev/statusfx/internal/game/effect"
)

// ActorKind distinguishes players from NPCs. Both can carry effects.
type ActorKind uint8

const (
	KindPlayer ActorKind = iota
	KindNpc
)

func (k ActorKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindNpc:
		return "npc"
	default:
		return "unknown"
	}
}

// BaseStats: базовые характеристики без учёта эффектов.
type BaseStats struct {
	Attack   int32
	Defense  int32
	Accuracy int32
}

// Actor is a live target: HP, base stats and its effect component.
// The effect state is owned by the actor and released on despawn.
type Actor struct {
	objectID uint32
	name     string
	kind     ActorKind
	base     BaseStats

	mu        sync.RWMutex
	currentHP int32
	maxHP     int32

	effects *effect.State
}

// NewActor создаёт актёра с полным HP и пустым набором эффектов.
func NewActor(objectID uint32, name string, kind ActorKind, maxHP int32, base BaseStats) *Actor {
	if maxHP < 1 {
		maxHP = 1
	}
	a := &Actor{
		objectID:  objectID,
		name:      name,
		kind:      kind,
		base:      base,
		currentHP: maxHP,
		maxHP:     maxHP,
	}
	a.effects = effect.NewState(a)
	return a
}

// ObjectID implements effect.Host.
func (a *Actor) ObjectID() uint32 { return a.objectID }

func (a *Actor) Name() string      { return a.name }
func (a *Actor) Kind() ActorKind   { return a.kind }
func (a *Actor) Base() BaseStats   { return a.base }
func (a *Actor) BaseAttack() int32 { return a.base.Attack }

// Effects returns the actor's effect component.
func (a *Actor) Effects() *effect.State { return a.effects }

// CurrentHP возвращает текущее HP.
func (a *Actor) CurrentHP() int32 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.currentHP
}

// MaxHP возвращает максимальное HP.
func (a *Actor) MaxHP() int32 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.maxHP
}

// SetCurrentHP устанавливает текущее HP с clamp 0..maxHP.
func (a *Actor) SetCurrentHP(hp int32) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if hp < 0 {
		hp = 0
	}
	if hp > a.maxHP {
		hp = a.maxHP
	}
	a.currentHP = hp
}

// ReduceCurrentHP implements effect.Damageable. HP never drops below 0.
func (a *Actor) ReduceCurrentHP(amount int32) {
	if amount <= 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	a.currentHP -= amount
	if a.currentHP < 0 {
		a.currentHP = 0
	}
}

// IsDead implements effect.Damageable.
func (a *Actor) IsDead() bool {
	return a.CurrentHP() <= 0
}
