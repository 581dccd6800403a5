// Package catalog holds the static grouping of icon names into categories.
//
// The catalog is loaded once from embedded data and is read-only
// afterwards. It lists names, not artwork: a name may be cataloged before
// the rendering registry can draw it.
package catalog
