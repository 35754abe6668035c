package event

import (
	"fmt"
	messagebus "github.com/vardius/message-bus"
	"vincit.fi/image-picker/api"
	"vincit.fi/image-picker/api/apitype"
	"vincit.fi/image-picker/common/logger"
)

// Broker publishes picker events as wire tuples on the message bus.
type Broker struct {
	bus messagebus.MessageBus

	api.EventSink
}

func InitBus(queueSize int) *Broker {
	return &Broker{
		bus: messagebus.New(queueSize),
	}
}

func (s *Broker) Subscribe(topic Topic, fn interface{}) error {
	if err := s.bus.Subscribe(string(topic), fn); err != nil {
		return fmt.Errorf("could not subscribe to '%s': %w", topic, err)
	}
	return nil
}

func (s *Broker) Unsubscribe(topic Topic, fn interface{}) error {
	return s.bus.Unsubscribe(string(topic), fn)
}

func (s *Broker) PostEvent(event *apitype.PickerEvent) {
	tuple := event.Tuple()
	logger.Debug.Printf("Posting %s to '%s' as %v", event, ImagePicker, tuple)
	s.bus.Publish(string(ImagePicker), tuple)
}

func (s *Broker) Close() {
	s.bus.Close(string(ImagePicker))
}
