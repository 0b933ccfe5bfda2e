package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Resolve bool
	Lint    bool
	Combine bool
	LSP     bool
}

var d *debug

func init() {
	d = &debug{}
	d.Resolve = boolEnv("JST_DEBUG_RESOLVE")
	d.Lint = boolEnv("JST_DEBUG_LINT")
	d.Combine = boolEnv("JST_DEBUG_COMBINE")
	d.LSP = boolEnv("JST_DEBUG_LSP")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Resolve() bool {
	return d.Resolve
}
func Lint() bool {
	return d.Lint
}
func Combine() bool {
	return d.Combine
}
func LSP() bool {
	return d.LSP
}
