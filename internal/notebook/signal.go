package notebook

// Signal fans a table-selection change out to named subscribers.
// Subscribers run synchronously, in subscription order, from the
// single event-handling context; there is no queue and no concurrency.
type Signal struct {
	order []string
	subs  map[string]func(table string)
}

// NewSignal creates an empty signal.
func NewSignal() *Signal {
	return &Signal{subs: make(map[string]func(table string))}
}

// Subscribe registers a named subscriber. Re-subscribing under the
// same name replaces the callback but keeps its position.
func (s *Signal) Subscribe(name string, fn func(table string)) {
	if _, ok := s.subs[name]; !ok {
		s.order = append(s.order, name)
	}
	s.subs[name] = fn
}

// Emit invokes every subscriber with the newly selected table.
func (s *Signal) Emit(table string) {
	for _, name := range s.order {
		s.subs[name](table)
	}
}

// Subscribers returns the subscriber names in emit order.
func (s *Signal) Subscribers() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
