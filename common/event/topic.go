package event

type Topic string

const (
	ImagePicker Topic = "event-image-picker"
)
