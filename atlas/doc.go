// Package atlas turns the active tile set into a usable GPU heightmap:
// toroidal tile-to-slot addressing, the raw-upload/preprocess/mip-build/
// active-swap sequence recorded onto one command buffer per frame, and the
// low-resolution full-world base texture.
package atlas
