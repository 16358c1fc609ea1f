package papertrade

import "iter"

// HistorySize is the number of most recent prices an instrument remembers.
const HistorySize = 10

// History stores the most recent values of a series, oldest first.
// Once its capacity is reached, appending evicts the oldest value.
type History[T any] struct {
	capacity int
	values   []T
}

// NewHistory returns an empty history holding at most 'capacity' values.
func NewHistory[T any](capacity int) *History[T] {
	if capacity <= 0 {
		capacity = HistorySize
	}
	return &History[T]{capacity: capacity, values: make([]T, 0, capacity+1)}
}

// Append adds a value at the end of the history, evicting the oldest ones beyond capacity.
func (h *History[T]) Append(v T) *History[T] {
	h.values = append(h.values, v)
	if extra := len(h.values) - h.capacity; extra > 0 {
		h.values = append(h.values[:0], h.values[extra:]...)
	}
	return h
}

// Len returns the number of values in the history.
func (h *History[T]) Len() int { return len(h.values) }

// Cap returns the maximum number of values in the history.
func (h *History[T]) Cap() int { return h.capacity }

// Latest returns the most recent value, or the zero value and false if the history is empty.
func (h *History[T]) Latest() (value T, ok bool) {
	if len(h.values) == 0 {
		return value, false
	}
	return h.values[len(h.values)-1], true
}

// Previous returns the value before the latest one, or the zero value and false if there
// are fewer than two values.
func (h *History[T]) Previous() (value T, ok bool) {
	if len(h.values) < 2 {
		return value, false
	}
	return h.values[len(h.values)-2], true
}

// Values returns an iterator over all values in the history, oldest first.
func (h *History[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range h.values {
			if !yield(v) {
				return
			}
		}
	}
}
