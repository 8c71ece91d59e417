package events

import (
	"encoding/json"
	"sync"
)

// LocalBus is an in-process Bus for running without a broker. Handlers
// are invoked synchronously on the publishing goroutine.
type LocalBus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]func(data []byte)
}

func NewLocalBus() *LocalBus {
	return &LocalBus{
		subs: make(map[string]map[int]func(data []byte)),
	}
}

func (b *LocalBus) Publish(subject string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.mu.RLock()
	handlers := make([]func(data []byte), 0, len(b.subs[subject]))
	for _, h := range b.subs[subject] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(data)
	}
	return nil
}

func (b *LocalBus) Subscribe(subject string, handler func(data []byte)) (Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs[subject] == nil {
		b.subs[subject] = make(map[int]func(data []byte))
	}
	id := b.nextID
	b.nextID++
	b.subs[subject][id] = handler

	return &localSubscription{bus: b, subject: subject, id: id}, nil
}

type localSubscription struct {
	bus     *LocalBus
	subject string
	id      int
}

func (s *localSubscription) Unsubscribe() error {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	delete(s.bus.subs[s.subject], s.id)
	return nil
}
