package apitype

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestReturnModeFromString(t *testing.T) {
	a := assert.New(t)

	t.Run("Valid", func(t *testing.T) {
		values := map[string]ReturnMode{
			"":       HandleMode,
			"handle": HandleMode,
			"IMAGE":  HandleMode,
			"data":   DataMode,
			" Data ": DataMode,
		}
		for value, expected := range values {
			mode, err := ReturnModeFromString(value)
			a.Nil(err)
			a.Equal(expected, mode)
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := ReturnModeFromString("bytes")
		a.NotNil(err)
	})

	t.Run("String", func(t *testing.T) {
		a.Equal("handle", HandleMode.String())
		a.Equal("data", DataMode.String())
		a.Equal("unknown", ReturnMode(7).String())
	})
}
