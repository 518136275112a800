package action

import (
	"reflect"
	"slices"

	"github.com/roach88/motion/internal/ease"
	"github.com/roach88/motion/internal/field"
	"github.com/roach88/motion/internal/interp"
)

// ID identifies an action inside a Store.
type ID uint64

// column holds every relation of one value type.
type column[T any] struct {
	actions  map[ID]Func[T]
	interps  map[ID]interp.Func[T]
	segments map[ID]Segment[T]
}

func newColumn[T any]() *column[T] {
	return &column[T]{
		actions:  make(map[ID]Func[T]),
		interps:  make(map[ID]interp.Func[T]),
		segments: make(map[ID]Segment[T]),
	}
}

func (c *column[T]) remove(id ID) {
	delete(c.actions, id)
	delete(c.interps, id)
	delete(c.segments, id)
}

func (c *column[T]) len() int {
	return len(c.actions)
}

// anyColumn is the type-erased view of a column.
type anyColumn interface {
	remove(id ID)
	len() int
}

type entry struct {
	key       Key
	valueType reflect.Type
}

// Store holds actions of any value type.
//
// A Store is exclusively owned by one timeline; it is not safe for
// concurrent use.
type Store struct {
	clock    *Clock
	entries  map[ID]entry
	columns  map[reflect.Type]anyColumn
	eases    map[ID]ease.Func
	marks    map[ID]SampleMode
	subjects map[reflect.Type]subjectRegistry
}

// NewStore creates an empty Store whose first action id is 1.
func NewStore() *Store {
	return &Store{
		clock:    NewClock(),
		entries:  make(map[ID]entry),
		columns:  make(map[reflect.Type]anyColumn),
		eases:    make(map[ID]ease.Func),
		marks:    make(map[ID]SampleMode),
		subjects: make(map[reflect.Type]subjectRegistry),
	}
}

func columnOf[T any](s *Store) (*column[T], bool) {
	c, ok := s.columns[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	return c.(*column[T]), true
}

func columnFor[T any](s *Store) *column[T] {
	if c, ok := columnOf[T](s); ok {
		return c
	}
	c := newColumn[T]()
	s.columns[reflect.TypeFor[T]()] = c
	return c
}

// Subjects returns the id registry for subject id type I, if any action
// references a subject of that type.
func Subjects[I comparable](s *Store) (*IDRegistry[I], bool) {
	r, ok := s.subjects[reflect.TypeFor[I]()]
	if !ok {
		return nil, false
	}
	return r.(*IDRegistry[I]), true
}

func subjectsFor[I comparable](s *Store) *IDRegistry[I] {
	if r, ok := Subjects[I](s); ok {
		return r
	}
	r := NewIDRegistry[I]()
	s.subjects[reflect.TypeFor[I]()] = r
	return r
}

// Add stores fn as an action on subject's field f and returns its id and key.
func Add[I comparable, S, T any](s *Store, subject I, f field.Field[S, T], fn Func[T]) (ID, Key) {
	return AddUntyped[I, T](s, subject, f.Untyped(), fn)
}

// AddUntyped is like Add for an erased field. The field's target type must
// be T for the action to ever be baked.
func AddUntyped[I comparable, T any](s *Store, subject I, f field.UntypedField, fn Func[T]) (ID, Key) {
	uid := subjectsFor[I](s).RegisterInstance(subject)
	key := Key{
		Subject: SubjectRef{Type: reflect.TypeFor[I](), UID: uid},
		Field:   f,
	}

	id := s.clock.Next()
	columnFor[T](s).actions[id] = fn
	s.entries[id] = entry{key: key, valueType: reflect.TypeFor[T]()}
	return id, key
}

// Remove deletes an action and every relation attached to it. It returns
// the action's key, or false if id is unknown.
//
// Compiled tracks are not touched; clips that still reference id are
// skipped during baking and sampling.
func (s *Store) Remove(id ID) (Key, bool) {
	e, ok := s.entries[id]
	if !ok {
		return Key{}, false
	}

	if c, ok := s.columns[e.valueType]; ok {
		c.remove(id)
		if c.len() == 0 {
			delete(s.columns, e.valueType)
		}
	}
	delete(s.entries, id)
	delete(s.eases, id)
	delete(s.marks, id)

	if r, ok := s.subjects[e.key.Subject.Type]; ok {
		r.removeInstance(e.key.Subject.UID)
		if r.isEmpty() {
			delete(s.subjects, e.key.Subject.Type)
		}
	}
	return e.key, true
}

// Key returns the key of an action.
func (s *Store) Key(id ID) (Key, bool) {
	e, ok := s.entries[id]
	return e.key, ok
}

// ValueType returns the value type token of an action, or nil if id is
// unknown.
func (s *Store) ValueType(id ID) reflect.Type {
	return s.entries[id].valueType
}

// Contains reports whether id is stored.
func (s *Store) Contains(id ID) bool {
	_, ok := s.entries[id]
	return ok
}

// Len returns the number of stored actions.
func (s *Store) Len() int {
	return len(s.entries)
}

// IDs returns every action id in ascending order.
func (s *Store) IDs() []ID {
	ids := make([]ID, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Get returns the action function for id. It returns false when id is
// unknown or the action's value type is not T.
func Get[T any](s *Store, id ID) (Func[T], bool) {
	c, ok := columnOf[T](s)
	if !ok {
		return nil, false
	}
	fn, ok := c.actions[id]
	return fn, ok
}

// SubjectOf resolves a SubjectRef back to the subject id. It returns false
// when ref's type is not I or the UID is no longer registered.
func SubjectOf[I comparable](s *Store, ref SubjectRef) (I, bool) {
	var zero I
	if ref.Type != reflect.TypeFor[I]() {
		return zero, false
	}
	r, ok := Subjects[I](s)
	if !ok {
		return zero, false
	}
	return r.ID(ref.UID)
}

// SetInterp attaches a custom interpolation function to an action. It
// returns false when id is not an action of value type T.
func SetInterp[T any](s *Store, id ID, fn interp.Func[T]) bool {
	c, ok := columnOf[T](s)
	if !ok {
		return false
	}
	if _, ok := c.actions[id]; !ok {
		return false
	}
	c.interps[id] = fn
	return true
}

// InterpOf returns the custom interpolation function of an action.
func InterpOf[T any](s *Store, id ID) (interp.Func[T], bool) {
	c, ok := columnOf[T](s)
	if !ok {
		return nil, false
	}
	fn, ok := c.interps[id]
	return fn, ok
}

// SetSegment attaches or replaces the baked segment of an action. It returns
// false when id is not an action of value type T.
func SetSegment[T any](s *Store, id ID, seg Segment[T]) bool {
	c, ok := columnOf[T](s)
	if !ok {
		return false
	}
	if _, ok := c.actions[id]; !ok {
		return false
	}
	c.segments[id] = seg
	return true
}

// SegmentOf returns the baked segment of an action.
func SegmentOf[T any](s *Store, id ID) (Segment[T], bool) {
	c, ok := columnOf[T](s)
	if !ok {
		return Segment[T]{}, false
	}
	seg, ok := c.segments[id]
	return seg, ok
}

// SetEase attaches an easing function to an action.
func (s *Store) SetEase(id ID, fn ease.Func) bool {
	if _, ok := s.entries[id]; !ok {
		return false
	}
	s.eases[id] = fn
	return true
}

// Ease returns the easing function of an action.
func (s *Store) Ease(id ID) (ease.Func, bool) {
	fn, ok := s.eases[id]
	return fn, ok
}

// Mark sets the sample mode of an action, replacing any previous mark.
func (s *Store) Mark(id ID, mode SampleMode) bool {
	if _, ok := s.entries[id]; !ok {
		return false
	}
	s.marks[id] = mode
	return true
}

// ClearMark removes the mark of an action.
func (s *Store) ClearMark(id ID) {
	delete(s.marks, id)
}

// ClearAllMarks removes every mark.
func (s *Store) ClearAllMarks() {
	clear(s.marks)
}

// MarkOf returns the mark of an action.
func (s *Store) MarkOf(id ID) (SampleMode, bool) {
	m, ok := s.marks[id]
	return m, ok
}

// Marked returns every marked action id in ascending order.
func (s *Store) Marked() []ID {
	ids := make([]ID, 0, len(s.marks))
	for id := range s.marks {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// MarkedCount returns the number of marked actions.
func (s *Store) MarkedCount() int {
	return len(s.marks)
}
