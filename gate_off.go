//go:build delog_off

package delog

const Disabled = true
