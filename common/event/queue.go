package event

import (
	"context"
	"vincit.fi/image-picker/common/logger"
)

// Queue is the consuming runtime's side of the broker: a FIFO of wire
// tuples read one at a time.
type Queue struct {
	events chan []int32
	broker *Broker
	handle func(tuple []int32)
}

func NewQueue(broker *Broker, size int) (*Queue, error) {
	if size < 1 {
		size = 1
	}
	queue := &Queue{
		events: make(chan []int32, size),
		broker: broker,
	}
	queue.handle = func(tuple []int32) {
		queue.events <- tuple
	}
	if err := broker.Subscribe(ImagePicker, queue.handle); err != nil {
		return nil, err
	}
	return queue, nil
}

// Next blocks until an event is available or ctx is done.
func (s *Queue) Next(ctx context.Context) ([]int32, error) {
	select {
	case tuple := <-s.events:
		logger.Trace.Printf("Queue delivered %v", tuple)
		return tuple, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Poll returns the next event without blocking.
func (s *Queue) Poll() ([]int32, bool) {
	select {
	case tuple := <-s.events:
		return tuple, true
	default:
		return nil, false
	}
}

func (s *Queue) Close() {
	if err := s.broker.Unsubscribe(ImagePicker, s.handle); err != nil {
		logger.Warn.Printf("Could not unsubscribe queue: %s", err)
	}
}
