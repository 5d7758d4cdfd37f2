package ecs

import "fmt"

// Entity is a generational handle: the low 32 bits index the slot, the high
// 32 bits count how often the slot was reused. A torn-down shape's handle
// never matches the shape later mounted into the same slot.
type Entity uint64

type entityID uint32
type generation uint32

// NoEntity is the zero handle; CreateEntity never returns it.
const NoEntity Entity = 0

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<32 | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(e & 0xffffffff)
}

func (e Entity) generation() generation {
	return generation(e >> 32)
}

// String renders slot and generation, e.g. "4v2".
func (e Entity) String() string {
	return fmt.Sprintf("%dv%d", e.id(), e.generation())
}

func (e Entity) Valid() bool {
	return e != NoEntity
}
