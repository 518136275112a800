package action

import (
	"cmp"
	"fmt"
	"reflect"

	"github.com/roach88/motion/internal/field"
)

// UID is a dense, type-erased stand-in for a subject id.
type UID uint64

// IDRegistry maps subject ids of one type to UIDs and counts how many
// actions reference each one. The mapping is dropped when the count
// reaches zero.
type IDRegistry[I comparable] struct {
	uids   map[I]UID
	ids    map[UID]I
	counts map[UID]uint32
	next   UID
}

// NewIDRegistry creates an empty registry.
func NewIDRegistry[I comparable]() *IDRegistry[I] {
	return &IDRegistry[I]{
		uids:   make(map[I]UID),
		ids:    make(map[UID]I),
		counts: make(map[UID]uint32),
	}
}

// RegisterInstance records one more reference to id and returns its UID,
// allocating a new UID on first use.
func (r *IDRegistry[I]) RegisterInstance(id I) UID {
	uid, ok := r.uids[id]
	if !ok {
		r.next++
		uid = r.next
		r.uids[id] = uid
		r.ids[uid] = id
	}
	r.counts[uid]++
	return uid
}

// RemoveInstance drops one reference to uid. It returns false if uid is
// unknown.
func (r *IDRegistry[I]) RemoveInstance(uid UID) bool {
	count, ok := r.counts[uid]
	if !ok {
		return false
	}
	if count <= 1 {
		delete(r.uids, r.ids[uid])
		delete(r.ids, uid)
		delete(r.counts, uid)
		return true
	}
	r.counts[uid] = count - 1
	return true
}

// UID returns the UID assigned to id.
func (r *IDRegistry[I]) UID(id I) (UID, bool) {
	uid, ok := r.uids[id]
	return uid, ok
}

// ID returns the subject id behind uid.
func (r *IDRegistry[I]) ID(uid UID) (I, bool) {
	id, ok := r.ids[uid]
	return id, ok
}

// Instances returns the reference count for uid.
func (r *IDRegistry[I]) Instances(uid UID) uint32 {
	return r.counts[uid]
}

// Len returns the number of distinct subject ids.
func (r *IDRegistry[I]) Len() int {
	return len(r.uids)
}

// IsEmpty reports whether no subject id is registered.
func (r *IDRegistry[I]) IsEmpty() bool {
	return len(r.uids) == 0
}

func (r *IDRegistry[I]) removeInstance(uid UID) bool { return r.RemoveInstance(uid) }
func (r *IDRegistry[I]) isEmpty() bool               { return r.IsEmpty() }

// subjectRegistry is the type-erased view of an IDRegistry the Store keeps
// per subject id type.
type subjectRegistry interface {
	removeInstance(uid UID) bool
	isEmpty() bool
}

// SubjectRef is a type-erased subject id: the id type plus its UID.
type SubjectRef struct {
	Type reflect.Type
	UID  UID
}

// PlaceholderSubject returns a SubjectRef with an empty struct type, for
// tests and tooling that only need distinct keys.
func PlaceholderSubject(uid uint64) SubjectRef {
	return SubjectRef{Type: reflect.TypeFor[struct{}](), UID: UID(uid)}
}

// Compare orders refs by type, then UID.
func (s SubjectRef) Compare(o SubjectRef) int {
	if c := field.CompareTypes(s.Type, o.Type); c != 0 {
		return c
	}
	return cmp.Compare(s.UID, o.UID)
}

func (s SubjectRef) String() string {
	if s.Type == nil {
		return fmt.Sprintf("<nil>#%d", s.UID)
	}
	return fmt.Sprintf("%s#%d", s.Type, s.UID)
}

// Key identifies one (subject, field) pair. Clips of the same key form one
// non-overlapping sequence.
type Key struct {
	Subject SubjectRef
	Field   field.UntypedField
}

// PlaceholderKey builds a key from placeholder parts.
func PlaceholderKey(subject uint64, path string) Key {
	return Key{Subject: PlaceholderSubject(subject), Field: field.Placeholder(path)}
}

// Compare orders keys by field, then subject.
func (k Key) Compare(o Key) int {
	if c := k.Field.Compare(o.Field); c != 0 {
		return c
	}
	return k.Subject.Compare(o.Subject)
}

func (k Key) String() string {
	return fmt.Sprintf("%s %s", k.Subject, k.Field)
}
