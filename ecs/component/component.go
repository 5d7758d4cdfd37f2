package component

import (
	"errors"
	"reflect"
	"strconv"
	"sync"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

type ComponentID uint32

var (
	nextComponentID atomic.Uint32
	names           sync.Map // ComponentID -> string
)

// ComponentHandle is the typed key for one component store. Handles are
// declared once per component type as package vars.
type ComponentHandle[T any] struct {
	id ComponentID
}

func NewComponent[T any]() ComponentHandle[T] {
	id := ComponentID(nextComponentID.Add(1))
	names.Store(id, reflect.TypeFor[T]().String())
	return ComponentHandle[T]{id: id}
}

func (h ComponentHandle[T]) ID() ComponentID {
	return h.id
}

func (h ComponentHandle[T]) Valid() bool {
	return h.id != 0
}

func (h ComponentHandle[T]) String() string {
	return Name(h.id)
}

// Name returns the Go type name registered for id.
func Name(id ComponentID) string {
	if v, ok := names.Load(id); ok {
		return v.(string)
	}
	return "component#" + strconv.FormatUint(uint64(id), 10)
}
