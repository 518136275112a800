package harness

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/motion/internal/field"
	"github.com/roach88/motion/internal/interp"
	"github.com/roach88/motion/internal/pipeline"
	"github.com/roach88/motion/internal/store"
)

// NodeID names a node of a Scene.
type NodeID string

// Node is the animatable state of one scene node.
type Node struct {
	Position interp.Vec2
	Scale    float64
	Opacity  float64
	Visible  bool
}

// DefaultNode is the state of a node a scenario declares without values.
var DefaultNode = Node{Scale: 1, Opacity: 1, Visible: true}

// Scene is the reference host world that scenarios animate. Every value
// written by a sample pass is journaled until drained.
type Scene struct {
	nodes   map[NodeID]*Node
	order   []NodeID
	journal []store.Sample
	encode  func(any) (string, error)
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{
		nodes:  make(map[NodeID]*Node),
		encode: encodeValue,
	}
}

// Add inserts or replaces a node.
func (s *Scene) Add(id NodeID, n Node) {
	if _, ok := s.nodes[id]; !ok {
		s.order = append(s.order, id)
	}
	s.nodes[id] = &n
}

// Node returns a pointer to a node's live state.
func (s *Scene) Node(id NodeID) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// IDs returns node ids in insertion order.
func (s *Scene) IDs() []NodeID {
	return slices.Clone(s.order)
}

// Drain returns the journaled writes sorted by subject then field, and
// clears the journal. A key written twice keeps its last value.
func (s *Scene) Drain() []store.Sample {
	out := make([]store.Sample, 0, len(s.journal))
	for _, w := range s.journal {
		i := slices.IndexFunc(out, func(o store.Sample) bool {
			return o.Subject == w.Subject && o.Field == w.Field
		})
		if i >= 0 {
			out[i] = w
			continue
		}
		out = append(out, w)
	}
	slices.SortFunc(out, func(a, b store.Sample) int {
		return cmp.Or(cmp.Compare(a.Subject, b.Subject), cmp.Compare(a.Field, b.Field))
	})
	s.journal = s.journal[:0]
	return out
}

func (s *Scene) record(id NodeID, f field.UntypedField, value any) {
	v, err := s.encode(value)
	if err != nil {
		v = fmt.Sprintf("%q", err.Error())
	}
	s.journal = append(s.journal, store.Sample{Subject: string(id), Field: FieldName(f), Value: v})
}

func encodeValue(v any) (string, error) {
	data, err := MarshalCanonical(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Field names as written in scenario files.
const (
	FieldPosition = "position"
	FieldScale    = "scale"
	FieldOpacity  = "opacity"
	FieldVisible  = "visible"
)

const fieldPrefix = "node::"

// Fields holds the animatable fields of Node.
type Fields struct {
	Position field.Field[Node, interp.Vec2]
	Scale    field.Field[Node, float64]
	Opacity  field.Field[Node, float64]
	Visible  field.Field[Node, bool]
}

// DefineFields registers an accessor for every Node field in r.
func DefineFields(r *field.Registry) Fields {
	return Fields{
		Position: field.Define(r, fieldPrefix+FieldPosition, func(n *Node) *interp.Vec2 { return &n.Position }),
		Scale:    field.Define(r, fieldPrefix+FieldScale, func(n *Node) *float64 { return &n.Scale }),
		Opacity:  field.Define(r, fieldPrefix+FieldOpacity, func(n *Node) *float64 { return &n.Opacity }),
		Visible:  field.Define(r, fieldPrefix+FieldVisible, func(n *Node) *bool { return &n.Visible }),
	}
}

// FieldName returns the scenario name of a Node field.
func FieldName(f field.UntypedField) string {
	name, _ := strings.CutPrefix(f.Path(), fieldPrefix)
	return name
}

// RegisterPipelines registers one pipeline per Node value type. Each
// pipeline reads and writes nodes through the field accessors and journals
// every write.
func RegisterPipelines(r *pipeline.Registry[*Scene]) {
	registerNodePipeline[interp.Vec2](r)
	registerNodePipeline[float64](r)
	registerNodePipeline[bool](r)
}

func registerNodePipeline[T any](r *pipeline.Registry[*Scene]) {
	r.Register(pipeline.KeyOf[NodeID, Node, T](), pipeline.Funcs[*Scene]{
		BakeFunc: func(s *Scene, ctx pipeline.BakeCtx) {
			pipeline.Bake[NodeID, Node, T](ctx, s.Node)
		},
		SampleFunc: func(s *Scene, ctx pipeline.SampleCtx) {
			pipeline.Sample[NodeID, Node, T](ctx, func(id NodeID, f field.UntypedField, v T, acc field.Accessor[Node, T]) bool {
				n, ok := s.Node(id)
				if !ok {
					return false
				}
				acc.Set(n, v)
				s.record(id, f, v)
				return true
			})
		},
	})
}
