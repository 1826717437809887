//go:build !delog_off

package delog

// Disabled is true when the module is built with the delog_off tag. Every logging
// operation then compiles down to a no-op.
const Disabled = false
