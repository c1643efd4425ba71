//go:build debug
// +build debug

package debug

const Debug = true
