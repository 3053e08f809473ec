package ast

import (
	"fmt"

	"fortio.org/safecast"
)

type Arena[T any] struct {
	data []T
}

// NewArena creates an arena whose backing slice has capacity capHint.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]T, 0, capHint),
	}
}

// Возвращает индекс нового элемента (1-based).
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	return a.Len()
}

// Get возвращает nil для нулевого индекса и для индекса за пределами арены.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || int(index) > len(a.data) {
		return nil
	}
	return &a.data[index-1]
}

// READONLY
func (a *Arena[T]) Slice() []T {
	return a.data
}

func (a *Arena[T]) Len() uint32 {
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("arena len overflow: %w", err))
	}
	return n
}
