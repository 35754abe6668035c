// Package host contains the environments that can present an image
// selection surface to the user.
package host

import (
	"fmt"
	"strings"
	"time"
	"vincit.fi/image-picker/api"
	"vincit.fi/image-picker/api/apitype"
)

type Options struct {
	// File is the selection delivered by the static host.
	File string
	// WatchDir is the drop directory of the watch host.
	WatchDir string
	// StartDir is where native dialogs open.
	StartDir string
	// Timeout cancels a pick when nothing is selected in time. Zero waits
	// until the context is done.
	Timeout time.Duration
}

const (
	Dialog = "dialog"
	Zenity = "zenity"
	Watch  = "watch"
	Static = "static"
)

func New(name string, options Options) (api.PickerHost, error) {
	switch strings.ToLower(name) {
	case Dialog:
		return NewDialogHost(options.StartDir), nil
	case Zenity:
		return NewZenityHost(options.StartDir), nil
	case Watch:
		return NewWatchHost(options.WatchDir, options.Timeout), nil
	case Static:
		return NewStaticHost(options.File), nil
	}
	return nil, fmt.Errorf("unknown picker host: '%s'", name)
}

// deliverAsync hands the result to the receiver from a new goroutine so
// that Present never runs the picker callbacks itself.
func deliverAsync(receiver api.PickResultReceiver, result *apitype.PickResult) {
	go receiver.Deliver(result)
}
