/* events.go
 * Contains the event emitter the engine uses to notify collaborators (UI, audit logging) about
 * round state changes and auto-pick assignment. Handlers are registered at construction time so
 * the engine never depends on any particular store's push notification mechanism
 * Authors: Zachary Bower
 */

package engine

import "sync"

// RoundStateHandler receives the round number and its new state ("PASSED")
type RoundStateHandler func(round int, state string)

// PicksAssignedHandler receives the round number and how many auto-picks were written
type PicksAssignedHandler func(round int, count int)

// Emitter fans out engine notifications to registered handlers. Safe for concurrent use
type Emitter struct {
	mu            sync.Mutex
	roundState    []RoundStateHandler
	picksAssigned []PicksAssignedHandler
}

func NewEmitter() *Emitter {
	return &Emitter{}
}

// OnRoundStateChanged registers a handler for round state transitions
func (e *Emitter) OnRoundStateChanged(handler RoundStateHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.roundState = append(e.roundState, handler)
}

// OnPicksAssigned registers a handler for auto-pick assignment notifications
func (e *Emitter) OnPicksAssigned(handler PicksAssignedHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.picksAssigned = append(e.picksAssigned, handler)
}

func (e *Emitter) emitRoundStateChanged(round int, state string) {
	e.mu.Lock()
	handlers := make([]RoundStateHandler, len(e.roundState))
	copy(handlers, e.roundState)
	e.mu.Unlock()

	for _, handler := range handlers {
		handler(round, state)
	}
}

func (e *Emitter) emitPicksAssigned(round int, count int) {
	e.mu.Lock()
	handlers := make([]PicksAssignedHandler, len(e.picksAssigned))
	copy(handlers, e.picksAssigned)
	e.mu.Unlock()

	for _, handler := range handlers {
		handler(round, count)
	}
}
