// Package geometry provides the 2D primitives and decomposition
// operations used to draw footprints.
//
// # Overview
//
// Footprint graphics are built from a small set of shapes: lines, arcs,
// circles, rectangles and polygons. Coordinates are in millimetres with
// the Y axis pointing down, matching the board file convention. Positive
// rotation angles turn counterclockwise on screen.
//
// All shapes are immutable values: [Shape.Translate] and [Shape.Rotate]
// return new shapes and never modify the receiver. A prototype shape
// (for example a pad outline reused across a pad array) can be shared
// freely between nodes.
//
// # Decomposition
//
// The interesting part of this package is shape decomposition, which the
// drawing layers use to route silkscreen around pads and to build
// courtyards:
//
//   - [Cut] splits a shape at its intersections with another shape's
//     outline, returning the fragments.
//   - [Keepout] removes the portions of a shape that fall inside a
//     closed region, returning the surviving fragments.
//   - [Inflate] grows or shrinks closed shapes by a fixed clearance.
//
// Fragments keep their original shape kind where possible: cutting an
// arc yields arcs, cutting a rectangle yields its boundary lines.
//
// # Tolerances
//
// Comparisons use an absolute tolerance of [Tol] millimetres. Fragments
// shorter than the tolerance are dropped during decomposition so that
// grazing intersections do not produce degenerate slivers.
package geometry
