package space

import (
	"fmt"
	"time"
)

// nodeIDCounter is a plain counter (no atomic, the engine is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is a tweenable element of a widget tree. Widgets embed or own a Node and
// animate it through its engine; disposing a node clears every tween on it and
// its descendants so no callback fires on a destroyed object.
type Node struct {
	ID   uint32
	Name string

	Parent   *Node
	children []*Node

	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	Alpha    float64
	Color    Color

	// UserData is free for the owning widget.
	UserData any

	engine   *Engine
	dirty    bool
	disposed bool
}

// NewNode creates a node animated by engine. engine may be nil for nodes that
// are only ever tweened through an explicit Scheduler.
func NewNode(name string, engine *Engine) *Node {
	return &Node{
		ID:     nextNodeID(),
		Name:   name,
		ScaleX: 1,
		ScaleY: 1,
		Alpha:  1,
		Color:  ColorWhite,
		engine: engine,
		dirty:  true,
	}
}

// Field implements Fielder. "scale" addresses ScaleX; use scaleX and scaleY to
// animate the axes independently. "opacity" is an alias of "alpha".
func (n *Node) Field(name string) *float64 {
	switch name {
	case "x":
		return &n.X
	case "y":
		return &n.Y
	case "scaleX", "scale":
		return &n.ScaleX
	case "scaleY":
		return &n.ScaleY
	case "rotation":
		return &n.Rotation
	case "alpha", "opacity":
		return &n.Alpha
	}
	return nil
}

// Engine returns the engine the node animates with.
func (n *Node) Engine() *Engine { return n.engine }

// MarkDirty flags the node for the presentation layer to re-read its fields.
func (n *Node) MarkDirty() { n.dirty = true }

// Dirty reports whether the node changed since the last ClearDirty.
func (n *Node) Dirty() bool { return n.dirty }

// ClearDirty resets the dirty flag once the presentation layer has synced.
func (n *Node) ClearDirty() { n.dirty = false }

// nodeAliases maps alias prop names to the canonical fields they drive.
var nodeAliases = map[string][]string{
	"scale":   {"scaleX", "scaleY"},
	"opacity": {"alpha"},
}

// Tween animates named fields of the node with its engine. A "scale" prop
// drives both axes. Aliases are bound under their canonical names, so records
// report "alpha" for an "opacity" prop; an explicit canonical key wins over an
// alias.
func (n *Node) Tween(props Props, duration time.Duration, easing Easing, opts ...TweenOption) (*Record, error) {
	if n.engine == nil {
		panic("space: Tween on node without engine")
	}
	if n.disposed {
		return nil, fmt.Errorf("space: tween on disposed node %q: %w", n.Name, ErrInvalidTarget)
	}
	props = canonicalProps(props)
	opts = append(opts[:len(opts):len(opts)], n.markDirtyOption())
	return n.engine.Tween(n, props, duration, easing, opts...)
}

func canonicalProps(props Props) Props {
	aliased := false
	for k := range props {
		if _, ok := nodeAliases[k]; ok {
			aliased = true
			break
		}
	}
	if !aliased {
		return props
	}
	out := make(Props, len(props)+1)
	for k, v := range props {
		if _, ok := nodeAliases[k]; !ok {
			out[k] = v
		}
	}
	for k, v := range props {
		for _, field := range nodeAliases[k] {
			if _, set := out[field]; !set {
				out[field] = v
			}
		}
	}
	return out
}

// ClearTween cancels every tween on the node.
func (n *Node) ClearTween() *Node {
	if n.engine != nil {
		n.engine.ClearTween(n)
	}
	return n
}

// markDirtyOption wraps the caller's OnUpdate so the node is marked dirty
// before it runs.
func (n *Node) markDirtyOption() TweenOption {
	return func(r *Record) {
		user := r.onUpdate
		r.onUpdate = func() {
			n.dirty = true
			if user != nil {
				user()
			}
		}
	}
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("space: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("space: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("space: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// --- Disposal ---

// Dispose removes this node from its parent, cancels its tweens, marks it as
// disposed, and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.ClearTween()
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
