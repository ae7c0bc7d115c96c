package choreo

// SubscriptionID identifies a handler registered on a Signal.
type SubscriptionID uint32

type handler struct {
	id SubscriptionID
	fn func()
}

// Signal is an ordered set of zero-argument callbacks invoked synchronously
// in subscription order. The zero value is ready to use.
type Signal struct {
	handlers []handler
	nextID   SubscriptionID
}

// Subscribe appends fn and returns an id for Unsubscribe. A nil fn is ignored
// and returns 0.
func (s *Signal) Subscribe(fn func()) SubscriptionID {
	if fn == nil {
		return 0
	}
	s.nextID++
	s.handlers = append(s.handlers, handler{id: s.nextID, fn: fn})
	return s.nextID
}

// Unsubscribe removes the handler with the given id. Unknown ids are ignored.
func (s *Signal) Unsubscribe(id SubscriptionID) {
	for i, h := range s.handlers {
		if h.id == id {
			// Copy on write: an emit in progress keeps iterating its snapshot.
			next := make([]handler, 0, len(s.handlers)-1)
			next = append(next, s.handlers[:i]...)
			s.handlers = append(next, s.handlers[i+1:]...)
			return
		}
	}
}

// Len returns the number of subscribed handlers.
func (s *Signal) Len() int {
	return len(s.handlers)
}

// Clear removes every handler.
func (s *Signal) Clear() {
	s.handlers = nil
}

// emit invokes each handler subscribed at the time of the call.
func (s *Signal) emit() {
	hs := s.handlers
	for _, h := range hs {
		h.fn()
	}
}
