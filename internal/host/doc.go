// Package host renders vault notes and dispatches their fenced code blocks to
// registered processors. It stands in for the application that normally owns
// the document lifecycle so processors can be driven from Go.
package host
