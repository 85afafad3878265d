package queue

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// HandlerFunc reacts to one change event. Handlers run sequentially on the
// consumer goroutine, so they must not block for long.
type HandlerFunc func(ev ChangeEvent)

type subscription struct {
	table   string
	event   string
	handler HandlerFunc
}

// Subscriber consumes the change queue and dispatches each event to the
// handlers registered for its table and event, with "*" acting as a
// wildcard on either part.
type Subscriber struct {
	rmq    *RabbitMQ
	logger *zap.Logger

	mu     sync.Mutex
	nextID int
	subs   map[int]subscription
}

func NewSubscriber(rmq *RabbitMQ, logger *zap.Logger) *Subscriber {
	return &Subscriber{
		rmq:    rmq,
		logger: logger,
		subs:   make(map[int]subscription),
	}
}

// Subscribe registers a handler and returns a function that removes it.
func (s *Subscriber) Subscribe(table, event string, fn HandlerFunc) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = subscription{table: table, event: event, handler: fn}

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Start consumes the change queue until the channel closes. Malformed
// payloads are rejected without requeue so they land in the DLQ.
func (s *Subscriber) Start() error {
	msgs, err := s.rmq.Ch.Consume(QueueName, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	s.logger.Info("consommation des événements de changement démarrée",
		zap.String("queue", QueueName))

	for msg := range msgs {
		var ev ChangeEvent
		if err := json.Unmarshal(msg.Body, &ev); err != nil {
			s.logger.Error("événement illisible", zap.Error(err))
			msg.Nack(false, false)
			continue
		}

		s.dispatch(ev)
		msg.Ack(false)
	}
	return nil
}

func (s *Subscriber) dispatch(ev ChangeEvent) {
	s.mu.Lock()
	handlers := make([]HandlerFunc, 0, len(s.subs))
	for _, sub := range s.subs {
		if (sub.table == "*" || sub.table == ev.Table) &&
			(sub.event == "*" || sub.event == ev.Event) {
			handlers = append(handlers, sub.handler)
		}
	}
	s.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}
