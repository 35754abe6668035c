package apitype

import "strconv"

// Handle identifies an entry in the runtime's resource table.
type Handle int32

const NoHandle = Handle(-1)

func (s Handle) IsValid() bool {
	return s >= 0
}

func (s Handle) AsInt() int32 {
	return int32(s)
}

func (s Handle) String() string {
	if s.IsValid() {
		return "Handle{" + strconv.Itoa(int(s)) + "}"
	} else {
		return "Handle<invalid>"
	}
}
