package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMalformed = errors.New("malformed progress payload")

// Key is the persisted slot for one plan's completed item ids.
func Key(planID string) string {
	return "plan:" + planID + ":progress"
}

// Set is an insertion-ordered set of completed item ids.
type Set struct {
	ids   []string
	index map[string]int
}

func NewSet(ids ...string) Set {
	s := Set{index: map[string]int{}}
	for _, id := range ids {
		s.add(id)
	}
	return s
}

func (s Set) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

func (s Set) Len() int {
	return len(s.ids)
}

// IDs returns a copy in insertion order.
func (s Set) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Toggle flips membership of id and reports whether it is now present.
func (s *Set) Toggle(id string) bool {
	if s.index == nil {
		s.index = map[string]int{}
	}
	if s.Has(id) {
		s.remove(id)
		return false
	}
	s.add(id)
	return true
}

func (s *Set) add(id string) {
	if s.index == nil {
		s.index = map[string]int{}
	}
	if _, ok := s.index[id]; ok {
		return
	}
	s.index[id] = len(s.ids)
	s.ids = append(s.ids, id)
}

func (s *Set) remove(id string) {
	pos := s.index[id]
	s.ids = append(s.ids[:pos:pos], s.ids[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.ids); i++ {
		s.index[s.ids[i]] = i
	}
}

func (s Set) Clone() Set {
	return NewSet(s.ids...)
}

func (s Set) MarshalJSON() ([]byte, error) {
	if s.ids == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.ids)
}

// Decode parses a stored payload. Anything other than a JSON array of
// strings is ErrMalformed.
func Decode(raw string) (Set, error) {
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return NewSet(), fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return NewSet(ids...), nil
}
