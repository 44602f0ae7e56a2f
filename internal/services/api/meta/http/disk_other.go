//go:build !linux && !darwin && !freebsd

package http

import "errors"

var errDiskUnsupported = errors.New("disk check unsupported on this platform")

func diskUsed(string) (float64, error) { return 0, errDiskUnsupported }
