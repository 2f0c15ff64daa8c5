package game

import (
	"fmt"
	"time"

	"github.com/plus3/vortex/ecs"
	"github.com/plus3/vortex/optional"
)

// Kind is the closed set of entity variants.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindEnemy
	KindProjectile
	KindFragment
)

// Kinds lists every kind in declaration order.
var Kinds = [...]Kind{KindPlayer, KindEnemy, KindProjectile, KindFragment}

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindProjectile:
		return "projectile"
	case KindFragment:
		return "explosionPart"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

func (k Kind) tag() any {
	switch k {
	case KindPlayer:
		return Player{}
	case KindEnemy:
		return Enemy{}
	case KindProjectile:
		return Projectile{}
	case KindFragment:
		return Fragment{}
	default:
		panic("unknown entity kind " + k.String())
	}
}

// Entity is a read-only snapshot of one entity.
type Entity struct {
	ID       ecs.EntityId
	Kind     Kind
	Position Position
	Velocity Velocity
	Body     Body
	// Created is only set for fragments.
	Created time.Time
}

type entityView struct {
	ecs.EntityId
	*Position
	*Velocity
	*Body
	Player     *Player     `ecs:"optional"`
	Enemy      *Enemy      `ecs:"optional"`
	Projectile *Projectile `ecs:"optional"`
	Fragment   *Fragment   `ecs:"optional"`
}

func (v entityView) kind() optional.Option[Kind] {
	switch {
	case v.Player != nil:
		return optional.Some(KindPlayer)
	case v.Enemy != nil:
		return optional.Some(KindEnemy)
	case v.Projectile != nil:
		return optional.Some(KindProjectile)
	case v.Fragment != nil:
		return optional.Some(KindFragment)
	default:
		return optional.None[Kind]()
	}
}

func (v entityView) snapshot(kind Kind) Entity {
	e := Entity{
		ID:       v.EntityId,
		Kind:     kind,
		Position: *v.Position,
		Velocity: *v.Velocity,
		Body:     *v.Body,
	}
	if v.Fragment != nil {
		e.Created = v.Fragment.Created
	}
	return e
}

// KindOf reports the variant of a live game entity.
func KindOf(storage *ecs.Storage, id ecs.EntityId) optional.Option[Kind] {
	return optional.FlatMap(optional.FromPtr(ecs.NewView[entityView](storage).Get(id)), entityView.kind)
}

// Lookup returns a snapshot of the entity, if it is a live game entity.
func Lookup(storage *ecs.Storage, id ecs.EntityId) optional.Option[Entity] {
	return optional.FlatMap(optional.FromPtr(ecs.NewView[entityView](storage).Get(id)), func(v entityView) optional.Option[Entity] {
		return optional.Map(v.kind(), v.snapshot)
	})
}

// Entities returns snapshots of every entity of the given kind in insertion order.
func Entities(storage *ecs.Storage, kind Kind) []Entity {
	var out []Entity
	for v := range ecs.NewView[entityView](storage).Values() {
		if k, ok := v.kind().Get(); ok && k == kind {
			out = append(out, v.snapshot(k))
		}
	}
	return out
}

// Count returns the number of live entities of each kind.
func Count(storage *ecs.Storage) map[Kind]int {
	counts := make(map[Kind]int, len(Kinds))
	for v := range ecs.NewView[entityView](storage).Values() {
		v.kind().IfPresent(func(k Kind) { counts[k]++ })
	}
	return counts
}
