package selectable_list

type SelectableList[T any] struct {
	Items   []T
	Current int // index of selected item, -1 when empty
}

// NewSelectableList creates a new selectable list, defaulting to the first item.
func NewSelectableList[T any](items []T) *SelectableList[T] {
	s := &SelectableList[T]{Items: items}
	s.FocusFirst()
	return s
}

func (s *SelectableList[T]) IsEmpty() bool {
	return len(s.Items) == 0
}

// Next moves selection forward (wraps around).
func (s *SelectableList[T]) Next() {
	if len(s.Items) == 0 {
		return
	}
	s.Current = (s.Current + 1) % len(s.Items)
}

// Prev moves selection backward (wraps around).
func (s *SelectableList[T]) Prev() {
	if len(s.Items) == 0 {
		return
	}
	s.Current = (s.Current - 1 + len(s.Items)) % len(s.Items)
}

// Selected returns the currently selected item. ok is false for an empty list.
func (s *SelectableList[T]) Selected() (item T, ok bool) {
	if s.Current < 0 || s.Current >= len(s.Items) {
		return item, false
	}
	return s.Items[s.Current], true
}

// Focus selects the first item matching pred and reports whether one did.
func (s *SelectableList[T]) Focus(pred func(T) bool) bool {
	for i, v := range s.Items {
		if pred(v) {
			s.Current = i
			return true
		}
	}
	return false
}

func (s *SelectableList[T]) FocusFirst() {
	s.Current = 0
	if len(s.Items) == 0 {
		s.Current = -1
	}
}

func (s *SelectableList[T]) ForEach(f func(item T, index int, isSelected bool)) {
	for i, item := range s.Items {
		f(item, i, i == s.Current)
	}
}

// SetItems replaces the items, clamping the selection into range.
func (s *SelectableList[T]) SetItems(items []T) {
	s.Items = items
	if s.Current >= len(items) {
		s.Current = len(items) - 1
	}
	if s.Current < 0 && len(items) > 0 {
		s.Current = 0
	}
}
