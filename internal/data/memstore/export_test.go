package memstore

// SetBidCount overwrites a job's counter so tests can simulate drift.
func (s *Store) SetBidCount(id string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[id]; ok {
		job.BidCount = n
	}
}
