package session

import "sync"

// Registry tracks live sessions so the server can report and close them.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Add registers s and returns a function that removes it.
func (r *Registry) Add(s *Session) (remove func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID()] = s
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.sessions, s.ID())
	}
}

// Len is the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// CloseAll ends every live session. Their Run calls return and deregister.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	live := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		live = append(live, s)
	}
	r.mu.Unlock()

	for _, s := range live {
		s.Close()
	}
}
