package pages

import (
	"slices"

	"github.com/Skotchmaster/order_admin/internal/models"
)

// Snapshot is an immutable list of records as last seen from the API.
// Every change yields a new Snapshot; the receiver is never modified.
type Snapshot[T models.Identified] struct {
	items []T
}

func NewSnapshot[T models.Identified](items []T) Snapshot[T] {
	return Snapshot[T]{items: slices.Clone(items)}
}

func (s Snapshot[T]) Items() []T {
	out := slices.Clone(s.items)
	if out == nil {
		out = []T{}
	}
	return out
}

func (s Snapshot[T]) Len() int { return len(s.items) }

func (s Snapshot[T]) Find(id models.ID) (T, bool) {
	for _, it := range s.items {
		if it.Key() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (s Snapshot[T]) Append(it T) Snapshot[T] {
	out := make([]T, 0, len(s.items)+1)
	out = append(out, s.items...)
	return Snapshot[T]{items: append(out, it)}
}

func (s Snapshot[T]) RemoveByID(id models.ID) Snapshot[T] {
	out := make([]T, 0, len(s.items))
	for _, it := range s.items {
		if it.Key() != id {
			out = append(out, it)
		}
	}
	return Snapshot[T]{items: out}
}

// Replace swaps the record with the same id in place. Unknown ids leave the
// snapshot as is.
func (s Snapshot[T]) Replace(it T) Snapshot[T] {
	out := slices.Clone(s.items)
	for i := range out {
		if out[i].Key() == it.Key() {
			out[i] = it
		}
	}
	return Snapshot[T]{items: out}
}
