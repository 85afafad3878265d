package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSubscriberDispatchMatchesTableAndEvent(t *testing.T) {
	s := NewSubscriber(nil, zap.NewNop())

	var got []string
	s.Subscribe("projects", EventUpdate, func(ev ChangeEvent) {
		got = append(got, "projects-update")
	})
	s.Subscribe("projects", "*", func(ev ChangeEvent) {
		got = append(got, "projects-any")
	})
	s.Subscribe("callback_requests", EventInsert, func(ev ChangeEvent) {
		got = append(got, "callbacks-insert")
	})

	s.dispatch(ChangeEvent{Table: "projects", Event: EventUpdate, RecordID: "proj-1"})

	assert.ElementsMatch(t, []string{"projects-update", "projects-any"}, got)
}

func TestSubscriberUnsubscribe(t *testing.T) {
	s := NewSubscriber(nil, zap.NewNop())

	calls := 0
	unsubscribe := s.Subscribe("projects", "*", func(ev ChangeEvent) { calls++ })

	s.dispatch(ChangeEvent{Table: "projects", Event: EventInsert})
	unsubscribe()
	s.dispatch(ChangeEvent{Table: "projects", Event: EventInsert})

	assert.Equal(t, 1, calls)
}

func TestSubscriberDispatchIgnoresOtherTables(t *testing.T) {
	s := NewSubscriber(nil, zap.NewNop())

	called := false
	s.Subscribe("proposals", EventInsert, func(ev ChangeEvent) { called = true })

	s.dispatch(ChangeEvent{Table: "projects", Event: EventInsert})

	assert.False(t, called)
}
