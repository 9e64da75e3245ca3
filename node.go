package overlay

import (
	"fmt"
	"os"
	"slices"
)

// nodeIDCounter is a plain counter; the scene graph is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is a minimal scene graph element implementing Object. It is enough to
// drive the overlays from a test or a small tool; games with their own scene
// graph implement Object and Scene directly.
//
// X and Y are relative to the parent; Pos reports the content-space
// position. Keep the root at the origin so its children are positioned in
// content space.
type Node struct {
	ID   uint32
	Name string

	X, Y   float64
	W, H   float64
	Origin Anchor

	// Tags are reported by Has and listed, in order, by Inspect.
	Tags []string
	// Info holds per-tag state shown in the inspect panel as "tag: value".
	Info map[string]any

	parent   *Node
	children []*Node
	hovered  bool
}

// NewNode creates a node of the given size carrying tags.
func NewNode(name string, w, h float64, tags ...string) *Node {
	return &Node{
		ID:   nextNodeID(),
		Name: name,
		W:    w,
		H:    h,
		Tags: tags,
	}
}

// --- Object ---

// Pos returns the node's position in content space.
func (n *Node) Pos() Vec2 { return n.WorldPos() }

// SetPos sets the node's position relative to its parent, matching how the
// inspect overlay drags objects.
func (n *Node) SetPos(p Vec2) { n.X, n.Y = p.X, p.Y }

// Anchor returns the node's origin anchor.
func (n *Node) Anchor() Anchor { return n.Origin }

// Width returns the node's width.
func (n *Node) Width() float64 { return n.W }

// Height returns the node's height.
func (n *Node) Height() float64 { return n.H }

// RenderArea returns the node's box in its own space.
func (n *Node) RenderArea() Rect { return Rect{Width: n.W, Height: n.H} }

// Has reports whether the node carries the tag.
func (n *Node) Has(tag string) bool { return slices.Contains(n.Tags, tag) }

// IsHovering reports the result of the last NodeScene.UpdateHover.
func (n *Node) IsHovering() bool { return n.hovered }

// Inspect lists the node's tags in order, each with its Info value.
func (n *Node) Inspect() []InspectEntry {
	out := make([]InspectEntry, 0, len(n.Tags))
	for _, tag := range n.Tags {
		e := InspectEntry{Tag: tag}
		if v, ok := n.Info[tag]; ok {
			e.Summary = tag + ": " + Pretty(v)
		}
		out = append(out, e)
	}
	return out
}

// Parent returns the parent node, or nil.
func (n *Node) Parent() Object {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// SetInfo sets the inspect value shown for tag.
func (n *Node) SetInfo(tag string, v any) {
	if n.Info == nil {
		n.Info = make(map[string]any)
	}
	n.Info[tag] = v
}

// --- Tree manipulation ---

// ParentNode returns the parent as a *Node.
func (n *Node) ParentNode() *Node { return n.parent }

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("overlay: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("overlay: adding child would create a cycle")
	}
	if child.parent != nil {
		child.parent.removeChildByPtr(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	checkTreeDepth(child)
}

// checkTreeDepth warns on stderr if tree depth exceeds the threshold.
const maxTreeDepth = 32

func checkTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.parent {
		depth++
	}
	if depth > maxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[overlay] warning: tree depth %d exceeds %d (node %q)\n",
			depth, maxTreeDepth, n.Name)
	}
}

// RemoveChild detaches child from this node.
// Panics if child's parent is not n.
func (n *Node) RemoveChild(child *Node) {
	if child.parent != n {
		panic("overlay: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.parent = nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.parent == nil {
		return
	}
	n.parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// WorldPos returns the node's position in content space.
func (n *Node) WorldPos() Vec2 {
	var p Vec2
	for c := n; c != nil; c = c.parent {
		p = p.Add(Vec2{c.X, c.Y})
	}
	return p
}

// Bounds returns the node's box in content space.
func (n *Node) Bounds() Rect {
	tl := n.Origin.Or(DefaultAnchor).TopLeft(n.WorldPos(), n.W, n.H)
	return Rect{X: tl.X, Y: tl.Y, Width: n.W, Height: n.H}
}

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.parent.
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

// --- NodeScene ---

// NodeScene implements Scene over a Node tree. Call UpdateHover every frame
// before Overlay.Draw.
type NodeScene struct {
	root *Node

	// ShowOrigins marks each node's anchor point during inspect.
	ShowOrigins bool
}

// NewNodeScene returns a scene rooted at root.
// Panics if root is nil.
func NewNodeScene(root *Node) *NodeScene {
	if root == nil {
		panic("overlay: scene root is nil")
	}
	return &NodeScene{root: root, ShowOrigins: true}
}

// Root returns the root node.
func (s *NodeScene) Root() Object { return s.root }

// RootNode returns the root as a *Node.
func (s *NodeScene) RootNode() *Node { return s.root }

// Query returns the root's descendants carrying tag ("*" matches all) in
// pre-order.
func (s *NodeScene) Query(tag string, recursive bool) []Object {
	var out []Object
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, c := range n.children {
			if tag == "*" || c.Has(tag) {
				out = append(out, c)
			}
			if recursive {
				walk(c)
			}
		}
	}
	walk(s.root)
	return out
}

// Find returns the first descendant named name in pre-order, or nil.
func (s *NodeScene) Find(name string) *Node {
	var found *Node
	var walk func(n *Node) bool
	walk = func(n *Node) bool {
		for _, c := range n.children {
			if c.Name == name {
				found = c
				return true
			}
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(s.root)
	return found
}

// UpdateHover marks every area node under p as hovered and clears the rest.
func (s *NodeScene) UpdateHover(p Vec2) {
	var walk func(n *Node)
	walk = func(n *Node) {
		n.hovered = n.Has(CapabilityArea) && n.W > 0 && n.H > 0 && n.Bounds().Contains(p)
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(s.root)
}

// DrawInspect marks node origins when ShowOrigins is set.
func (s *NodeScene) DrawInspect(c Canvas) {
	if !s.ShowOrigins {
		return
	}
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, ch := range n.children {
			c.DrawCircle(CircleOpt{Pos: ch.WorldPos(), Radius: 3, Color: ColorRed})
			walk(ch)
		}
	}
	walk(s.root)
}
