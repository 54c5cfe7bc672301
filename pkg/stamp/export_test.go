package stamp

// HoldReadLock acquires the read lock and returns its release
func (s *Store) HoldReadLock() func() {
	s.mu.RLock()
	return s.mu.RUnlock
}
