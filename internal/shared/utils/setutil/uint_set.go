// Package setutil provides an insertion-ordered set of user IDs.
package setutil

// UintSet keeps the first-seen order of its members.
type UintSet struct {
	items map[uint]struct{}
	order []uint
}

func NewUintSet(ids ...uint) *UintSet {
	s := &UintSet{items: make(map[uint]struct{}, len(ids))}
	s.AddAll(ids)
	return s
}

// Add inserts id and reports whether it was new.
func (s *UintSet) Add(id uint) bool {
	if _, ok := s.items[id]; ok {
		return false
	}
	s.items[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

func (s *UintSet) AddAll(ids []uint) {
	for _, id := range ids {
		s.Add(id)
	}
}

func (s *UintSet) Has(id uint) bool {
	_, ok := s.items[id]
	return ok
}

// Remove deletes id, preserving the order of the rest.
func (s *UintSet) Remove(id uint) {
	if _, ok := s.items[id]; !ok {
		return
	}
	delete(s.items, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// ToSlice returns the members in insertion order.
func (s *UintSet) ToSlice() []uint {
	out := make([]uint, len(s.order))
	copy(out, s.order)
	return out
}

func (s *UintSet) Len() int {
	return len(s.order)
}
