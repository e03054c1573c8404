// Package scope provides an ambient logging context for Go.
// A Stack holds the loggers entered so far; the most recently entered one
// is "the current logger" until its Guard exits. Global returns the
// process-wide stack used by the package-level helpers and by synchronous code.
//
// Entering a logger around a call is the synchronous half of the story.
// Package future re-enters the logger on every poll of an asynchronous
// computation so that work resumed later still sees it.
package scope
