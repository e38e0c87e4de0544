package footprint

import (
	"github.com/google/uuid"

	kfperrors "github.com/matzehuels/kicadfp/pkg/errors"
	"github.com/matzehuels/kicadfp/pkg/geometry"
)

// =============================================================================
// Node Interface
// =============================================================================

// Node is an element of a footprint tree. Concrete node types embed
// [BaseNode] for the shared bookkeeping and add their drawing fields.
// Nodes are created through the package constructors, which bind the
// base to the concrete value.
type Node interface {
	// Kind returns the node class name used in identifier derivation
	// and output ordering.
	Kind() string

	// Tree structure.
	Parent() Node
	Children() []Node
	VirtualChildren() []Node
	AllChildren() []Node
	Append(child Node) error
	Extend(children ...Node) error
	Remove(child Node) error
	Insert(node Node) error

	// Identity.
	TStamp() uuid.UUID
	SetTStamp(id uuid.UUID)
	Seed() uuid.UUID
	SetSeed(seed uuid.UUID)
	UniqueID() string
	SetUniqueID(id string)
	ContentHash() string

	// Placement through ancestor transform wrappers.
	RealPosition(at geometry.Vec) geometry.Vec
	RealRotation(angle float64) float64

	// Copy returns a deep copy of the node and its children with the
	// parent cleared.
	Copy() Node

	contentID() *identity
	base() *BaseNode
}

// =============================================================================
// Base Node
// =============================================================================

// BaseNode carries the tree bookkeeping shared by every node kind:
// parent link, ordered children, and identifier state.
type BaseNode struct {
	self     Node
	kind     string
	parent   Node
	children []Node

	seed     uuid.UUID
	fixed    *uuid.UUID
	uniqueID string
}

// bind wires the embedded base to the concrete node. Every constructor
// calls it exactly once before the node is handed out.
func (b *BaseNode) bind(self Node, kind string) {
	b.self = self
	b.kind = kind
}

func (b *BaseNode) base() *BaseNode { return b }

// Kind returns the node class name.
func (b *BaseNode) Kind() string { return b.kind }

// Parent returns the owning node, or nil for detached nodes and roots.
func (b *BaseNode) Parent() Node { return b.parent }

// Children returns the directly attached children in attachment order.
func (b *BaseNode) Children() []Node {
	out := make([]Node, len(b.children))
	copy(out, b.children)
	return out
}

// VirtualChildren returns generated children. The base has none;
// composite nodes override this.
func (b *BaseNode) VirtualChildren() []Node { return nil }

// AllChildren returns attached children followed by generated ones.
func (b *BaseNode) AllChildren() []Node {
	all := make([]Node, len(b.children))
	copy(all, b.children)
	if b.self != nil {
		all = append(all, b.self.VirtualChildren()...)
	}
	return all
}

// Append attaches a child. A node can only ever have one parent, so
// appending an already-attached node fails. The parent's seed
// propagates into the child's subtree.
func (b *BaseNode) Append(child Node) error {
	if child == nil {
		return kfperrors.New(kfperrors.ErrCodeInvalidInput, "cannot append nil node")
	}
	if child == b.self {
		return kfperrors.New(kfperrors.ErrCodeInvalidInput, "cannot append %s node to itself", child.Kind())
	}
	if child.Parent() != nil {
		return kfperrors.New(kfperrors.ErrCodeMultipleParents, "%s node already has a parent", child.Kind())
	}
	child.base().parent = b.self
	b.children = append(b.children, child)
	child.SetSeed(b.seed)
	return nil
}

// Extend appends each child in order. Nil entries are rejected.
func (b *BaseNode) Extend(children ...Node) error {
	for _, c := range children {
		if err := b.Append(c); err != nil {
			return err
		}
	}
	return nil
}

// Remove detaches the child wherever it appears below this node.
// Generated children cannot be removed. Removing a node that is not in
// the subtree is a no-op.
func (b *BaseNode) Remove(child Node) error {
	if child == nil {
		return kfperrors.New(kfperrors.ErrCodeInvalidInput, "cannot remove nil node")
	}
	if b.self != nil {
		for _, v := range b.self.VirtualChildren() {
			if v == child {
				return kfperrors.New(kfperrors.ErrCodeVirtualChild, "cannot remove generated %s node", child.Kind())
			}
		}
	}
	kept := b.children[:0]
	for _, c := range b.children {
		if c == child {
			c.base().parent = nil
			continue
		}
		kept = append(kept, c)
	}
	b.children = kept
	for _, c := range b.children {
		if err := c.Remove(child); err != nil {
			return err
		}
	}
	return nil
}

// Insert reparents all current children under node, then attaches node
// as the only child. Used to wrap an existing subtree in a transform.
func (b *BaseNode) Insert(node Node) error {
	if node == nil {
		return kfperrors.New(kfperrors.ErrCodeInvalidInput, "cannot insert nil node")
	}
	if node.Parent() != nil {
		return kfperrors.New(kfperrors.ErrCodeMultipleParents, "%s node already has a parent", node.Kind())
	}
	moved := b.children
	b.children = nil
	for _, c := range moved {
		c.base().parent = nil
		if err := node.Append(c); err != nil {
			return err
		}
	}
	return b.Append(node)
}

// TStamp returns the node identifier: the pinned UUID if one was set,
// otherwise the value derived from seed, kind, unique ID and content.
func (b *BaseNode) TStamp() uuid.UUID {
	if b.fixed != nil {
		return *b.fixed
	}
	return deriveTStamp(b.seed, b.kind, b.uniqueID, b.ContentHash())
}

// SetTStamp pins the node identifier to a fixed UUID.
func (b *BaseNode) SetTStamp(id uuid.UUID) { b.fixed = &id }

// Seed returns the derivation seed currently in effect for this node.
func (b *BaseNode) Seed() uuid.UUID { return b.seed }

// SetSeed sets the derivation seed and propagates it through the
// subtree, generated children included.
func (b *BaseNode) SetSeed(seed uuid.UUID) {
	b.seed = seed
	for _, c := range b.AllChildren() {
		c.SetSeed(seed)
	}
}

// UniqueID returns the disambiguator mixed into identifier derivation.
func (b *BaseNode) UniqueID() string { return b.uniqueID }

// SetUniqueID sets the disambiguator. The file writer assigns these to
// content-identical siblings so their identifiers differ.
func (b *BaseNode) SetUniqueID(id string) { b.uniqueID = id }

// ContentHash returns the hash of the node's own fields. Children,
// parent and identifiers do not contribute.
func (b *BaseNode) ContentHash() string {
	if b.self == nil {
		return newIdentity(b.kind).Hash()
	}
	return b.self.contentID().Hash()
}

// copyInto clones the identifier state and deep-copies the children
// into a freshly bound node.
func (b *BaseNode) copyInto(dst Node) {
	base := dst.base()
	dst.SetSeed(b.seed)
	base.uniqueID = b.uniqueID
	if b.fixed != nil {
		fixed := *b.fixed
		base.fixed = &fixed
	}
	for _, c := range b.children {
		_ = dst.Append(c.Copy())
	}
}
