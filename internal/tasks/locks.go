package tasks

import "sync"

// Locks: один мьютекс на задание, сериализует read-modify-write внутри процесса.
type Locks struct {
	mu sync.Mutex
	m  map[TaskID]*sync.Mutex
}

func NewLocks() *Locks {
	return &Locks{m: make(map[TaskID]*sync.Mutex)}
}

func (l *Locks) Lock(t TaskID) (unlock func()) {
	l.mu.Lock()
	m, ok := l.m[t]
	if !ok {
		m = &sync.Mutex{}
		l.m[t] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
