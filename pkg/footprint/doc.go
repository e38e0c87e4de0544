// Package footprint models a KiCad footprint as a tree of nodes.
//
// # Overview
//
// A footprint is built by creating a [Footprint] root and appending
// nodes to it: graphic primitives ([Line], [Arc], [Circle], [Rect],
// [Polygon]), [Text] and [Property] fields, [Pad] and [Zone] copper
// features, [Model] references and [Group] markers. Transform wrappers
// ([Rotation], [Translation]) position whole subtrees without touching
// the coordinates stored on their children.
//
// Every node embeds [BaseNode], which carries the tree bookkeeping: a
// node has at most one parent, and attaching an already-parented node
// fails. Composite nodes such as [PadArray] expose generated children
// through VirtualChildren; these serialize like regular children but
// cannot be detached.
//
// # Identity
//
// Each node derives a stable UUID from the footprint's seed and its own
// content hash, so regenerating an unchanged footprint yields identical
// identifiers and changed nodes get fresh ones. Identifiers can also be
// pinned explicitly with SetTStamp.
//
// # Coordinates
//
// All dimensions are millimetres. The Y axis points down, matching the
// KiCad canvas. Positive rotations turn counterclockwise on screen.
package footprint
