package supervisor

// RegisteredWorkers returns the number of records in the worker registry.
// This is exported for testing purposes only.
func (s *Supervisor) RegisteredWorkers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.workers)
}
