package apitype

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestHandle_String(t *testing.T) {
	a := assert.New(t)

	a.Equal("Handle<invalid>", NoHandle.String())
	a.Equal("Handle{0}", Handle(0).String())
	a.Equal("Handle{12}", Handle(12).String())
}

func TestHandle_IsValid(t *testing.T) {
	a := assert.New(t)

	a.False(NoHandle.IsValid())
	a.False(Handle(-5).IsValid())
	a.True(Handle(0).IsValid())
	a.True(Handle(1).IsValid())
	a.Equal(int32(-1), NoHandle.AsInt())
}
