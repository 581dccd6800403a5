// Package render provides the icon rendering registry and the normalizer
// that customizes registry markup.
//
// The registry is the only source of artwork. The normalizer never
// substitutes a placeholder: a missing icon is an *IconNotFoundError and
// callers decide what to show.
package render
