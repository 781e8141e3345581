//go:build windows

package preflight

import "errors"

var errUnsupportedPlatform = errors.New("preflight probes are unix-only")

func freeDiskBytes(path string) (uint64, error) {
	return 0, errUnsupportedPlatform
}

func totalMemoryBytes() (uint64, error) {
	return 0, errUnsupportedPlatform
}
