package clipboard

import "sync"

// Memory is an in-process clipboard. Dry runs stage into one so the text can
// be printed instead of copied.
type Memory struct {
	mu       sync.Mutex
	text     string
	acquired int
	released int
	// Fail makes Write return this error.
	Fail error
}

// Acquire always succeeds.
func (m *Memory) Acquire() (Stage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.acquired++
	return &memoryStage{m: m}, nil
}

// Text returns the last written text.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// Balanced reports whether every acquired stage has been released.
func (m *Memory) Balanced() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.acquired == m.released
}

// Acquired returns how many stages have been handed out.
func (m *Memory) Acquired() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.acquired
}

type memoryStage struct {
	m *Memory
}

func (s *memoryStage) Write(text string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.Fail != nil {
		return s.m.Fail
	}
	s.m.text = text
	return nil
}

func (s *memoryStage) Release() error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.released++
	return nil
}
