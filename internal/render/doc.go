// Package render implements the markdown renderer adapters the embed
// processor hands resolved text to.
package render
