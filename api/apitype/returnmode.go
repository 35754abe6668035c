package apitype

import (
	"fmt"
	"strings"
)

// ReturnMode selects what a Ready event refers to.
type ReturnMode int32

const (
	// HandleMode registers a downsampled pixel buffer in the image table.
	HandleMode ReturnMode = 0
	// DataMode registers the raw encoded bytes as a data object.
	DataMode ReturnMode = 1
)

func ReturnModeFromString(value string) (ReturnMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "handle", "image":
		return HandleMode, nil
	case "data":
		return DataMode, nil
	}
	return HandleMode, fmt.Errorf("invalid return mode: '%s'", value)
}

func (s ReturnMode) String() string {
	switch s {
	case HandleMode:
		return "handle"
	case DataMode:
		return "data"
	}
	return "unknown"
}
