package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithDefaultPageSize sets the page size used when a query leaves it empty.
func WithDefaultPageSize(size int) Option {
	return func(s *MemoryStore) {
		if size > 0 {
			s.defaultPageSize = size
		}
	}
}

// WithMaxPageSize caps the page size a query may request.
func WithMaxPageSize(size int) Option {
	return func(s *MemoryStore) {
		if size > 0 {
			s.maxPageSize = size
		}
	}
}
