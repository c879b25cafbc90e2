// Package scene describes the scaling demonstration as a storyboard: a fixed
// list of timed steps, each animating a handful of objects (axes, the
// triangle, vertex labels, the matrix, column vectors and dots).
//
// A [Scene] is immutable once built. [Scene.FrameAt] replays the storyboard
// from the initial state up to time t and returns a [Frame], a snapshot of
// every visible object in draw order, so frames can be produced in any order
// and from several goroutines at once.
//
// Coordinates are scene units: the frame is [FrameHeight] units tall,
// centered on the origin with y pointing up. Data coordinates are mapped to
// scene units through [Axes.CoordsToPoint].
//
// # Storyboard
//
//  1. Create axes
//  2. Create the triangle
//  3. Write vertex labels, wait
//  4. Write the scaling matrix
//  5. Per vertex: move label next to the matrix, turn it into a column
//     vector, write "=" and the product, move the product onto the plane and
//     turn it into a dot
//  6. Scale the triangle, fill the result, label the new vertices
//
// The package is not a general animation engine: [Build] is the only way to
// obtain a Scene.
package scene
