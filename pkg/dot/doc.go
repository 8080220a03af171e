// Package dot provides the public, library-facing API for managing
// symlink farms from a stow-style package directory into a target
// directory. It is a thin facade over the internal planning and
// execution pipeline, exposing just enough surface for a caller to
// stow, delete, or restow packages without depending on internal/.
package dot
