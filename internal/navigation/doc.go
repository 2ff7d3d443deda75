// Package navigation keeps a page's active section in step with what the
// visitor is looking at.
//
// A Controller owns one value, the active section id, which always belongs
// to the fixed set of sections it was built with. Two things move it:
//
//   - visibility events from a VisibilitySource: a section entering the
//     viewport past VisibilityThreshold becomes active;
//   - NavigateTo: an explicit jump, applied immediately and followed by a
//     smooth-scroll request to the Scroller.
//
// Setting the id that is already active is a no-op and notifies nobody.
// Close releases every visibility subscription and waits for the delivery
// goroutines to exit.
package navigation
