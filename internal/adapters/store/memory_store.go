package store

import (
	"context"
	"sync"

	"visit-route-service/internal/domain"
)

type sessionState struct {
	weekday  string
	week     *int
	schedule *domain.Schedule
}

// MemoryStore holds rosters and session state in process memory behind a
// single mutex. Racing uploads keep last-writer-wins semantics, which is
// acceptable for a single-operator tool, but readers never observe a torn
// roster.
type MemoryStore struct {
	mu       sync.Mutex
	patients []*domain.Patient
	staff    []*domain.StaffMember
	sessions map[string]*sessionState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*sessionState)}
}

func (m *MemoryStore) ListPatients(ctx context.Context) ([]*domain.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.Patient, len(m.patients))
	copy(out, m.patients)
	return out, nil
}

func (m *MemoryStore) ReplacePatients(ctx context.Context, patients []*domain.Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.patients = make([]*domain.Patient, len(patients))
	copy(m.patients, patients)
	return nil
}

func (m *MemoryStore) ListStaff(ctx context.Context) ([]*domain.StaffMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.StaffMember, len(m.staff))
	copy(out, m.staff)
	return out, nil
}

func (m *MemoryStore) ReplaceStaff(ctx context.Context, staff []*domain.StaffMember) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.staff = make([]*domain.StaffMember, len(staff))
	copy(m.staff, staff)
	return nil
}

func (m *MemoryStore) SetStaffActive(ctx context.Context, id string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.staff {
		if s.ID == id {
			s.IsActive = active
			break
		}
	}
	return nil
}

func (m *MemoryStore) Selection(ctx context.Context, sessionID string) (domain.Selection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.sessions[sessionID]
	if !ok {
		return domain.Selection{Weekday: domain.DefaultWeekday}, nil
	}
	return domain.Selection{Weekday: st.weekday, Week: st.week}, nil
}

func (m *MemoryStore) SetWeekday(ctx context.Context, sessionID, weekday string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session(sessionID).weekday = weekday
	return nil
}

func (m *MemoryStore) SetWeek(ctx context.Context, sessionID string, week int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session(sessionID).week = &week
	return nil
}

func (m *MemoryStore) Schedule(ctx context.Context, sessionID string) (*domain.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return st.schedule, nil
}

func (m *MemoryStore) SaveSchedule(ctx context.Context, sessionID string, s *domain.Schedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session(sessionID).schedule = s
	return nil
}

// session returns the state for sessionID, creating it with defaults.
// Callers must hold the mutex.
func (m *MemoryStore) session(sessionID string) *sessionState {
	st, ok := m.sessions[sessionID]
	if !ok {
		st = &sessionState{weekday: domain.DefaultWeekday}
		m.sessions[sessionID] = st
	}
	return st
}
