// Package player shows a scene in a desktop window.
//
// Keys: space pauses, left and right scrub, r restarts, q or escape quits.
//
// The window needs ebiten, which links against cgo and the platform's
// display libraries. Builds tagged headless leave it out.
package player
