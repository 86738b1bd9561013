package recorder

import "sync"

type subscription struct {
	r    *Recorder
	name string
	id   uint64
	down bool
	once sync.Once
}

func (r *Recorder) subscribe(name string, fn func(), down bool) Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	e := r.entryLocked(name)
	h := handler{id: r.nextID, fn: fn}
	if down {
		e.down = append(e.down, h)
	} else {
		e.up = append(e.up, h)
	}
	return &subscription{r: r, name: name, id: h.id, down: down}
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		s.r.mu.Lock()
		defer s.r.mu.Unlock()
		e, ok := s.r.entries[s.name]
		if !ok {
			return
		}
		if s.down {
			e.down = without(e.down, s.id)
		} else {
			e.up = without(e.up, s.id)
		}
	})
}

func without(hs []handler, id uint64) []handler {
	out := hs[:0:0]
	for _, h := range hs {
		if h.id != id {
			out = append(out, h)
		}
	}
	return out
}
