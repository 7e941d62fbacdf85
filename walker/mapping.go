package walker

// EntityMapping pairs the old and new value of something at one location.
// It is comparable whenever T is.
type EntityMapping[T any] struct {
	Old T `json:"old"`
	New T `json:"new"`
}

// NewEntityMapping returns the pair (oldValue, newValue).
func NewEntityMapping[T any](oldValue, newValue T) EntityMapping[T] {
	return EntityMapping[T]{Old: oldValue, New: newValue}
}
