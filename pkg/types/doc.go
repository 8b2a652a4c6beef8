// Package types defines the small set of types shared across dotsync:
// the filesystem interface every component works against, the entity kind
// produced by classification, and the copy direction of a managed pair.
package types
