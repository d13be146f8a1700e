// Package clipmap builds the nested-ring clipmap mesh once at startup and
// records its per-frame draw: a full-world pass that fills the terrain
// outside the clipmap footprint, and a clipmap pass whose vertex shader
// resolves world position against the active atlas using the current
// wrap offset.
package clipmap
