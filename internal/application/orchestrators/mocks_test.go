package orchestrators

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"khatamflow/internal/domain/goal"
	"khatamflow/internal/domain/progress"
	settingsDomain "khatamflow/internal/domain/settings"
)

// fixedNow returns a stable timestamp for deterministic tests.
// 2026-03-10 is a Tuesday; maghrib cutoff default is 18:00, so this
// instant (10:00 UTC) is before the boundary.
func fixedNow() time.Time {
	return time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
}

// seqID returns a generator producing test-id-001, test-id-002, ...
func seqID() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("test-id-%03d", n)
	}
}

// --- mock stores ---

type mockGoalStore struct {
	goal *goal.Goal
}

func (m *mockGoalStore) Get(_ context.Context) (goal.Goal, error) {
	if m.goal == nil {
		return goal.Goal{}, sql.ErrNoRows
	}
	return *m.goal, nil
}

func (m *mockGoalStore) Save(_ context.Context, g goal.Goal) error {
	m.goal = &g
	return nil
}

func (m *mockGoalStore) Clear(_ context.Context) error {
	m.goal = nil
	return nil
}

type mockLogStore struct {
	logs []progress.Log
}

func (m *mockLogStore) List(_ context.Context) ([]progress.Log, error) {
	out := make([]progress.Log, len(m.logs))
	copy(out, m.logs)
	return out, nil
}

func (m *mockLogStore) Save(_ context.Context, l progress.Log) error {
	for i := range m.logs {
		if m.logs[i].ID == l.ID {
			m.logs[i] = l
			return nil
		}
	}
	m.logs = append(m.logs, l)
	return nil
}

func (m *mockLogStore) Delete(_ context.Context, id string) error {
	for i := range m.logs {
		if m.logs[i].ID == id {
			m.logs = append(m.logs[:i], m.logs[i+1:]...)
			return nil
		}
	}
	return progress.ErrLogNotFound
}

func (m *mockLogStore) DeleteAll(_ context.Context) error {
	m.logs = nil
	return nil
}

type mockSummaryStore struct {
	summary *progress.Summary
}

func (m *mockSummaryStore) Get(_ context.Context) (progress.Summary, error) {
	if m.summary == nil {
		return progress.Summary{}, sql.ErrNoRows
	}
	return *m.summary, nil
}

func (m *mockSummaryStore) Save(_ context.Context, s progress.Summary) error {
	m.summary = &s
	return nil
}

func (m *mockSummaryStore) Clear(_ context.Context) error {
	m.summary = nil
	return nil
}

type mockTargetStore struct {
	target *goal.DailyTarget
}

func (m *mockTargetStore) Get(_ context.Context) (goal.DailyTarget, error) {
	if m.target == nil {
		return goal.DailyTarget{}, sql.ErrNoRows
	}
	return *m.target, nil
}

func (m *mockTargetStore) Save(_ context.Context, t goal.DailyTarget) error {
	m.target = &t
	return nil
}

func (m *mockTargetStore) Clear(_ context.Context) error {
	m.target = nil
	return nil
}

type mockSettingsStore struct {
	values map[string]string
}

func newMockSettingsStore() *mockSettingsStore {
	return &mockSettingsStore{values: make(map[string]string)}
}

func (m *mockSettingsStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return settingsDomain.Default(key), nil
}

func (m *mockSettingsStore) Put(_ context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func (m *mockSettingsStore) All(_ context.Context) (map[string]string, error) {
	return m.values, nil
}

type mockMilestoneStore struct {
	sent map[string]map[int]bool
}

func newMockMilestoneStore() *mockMilestoneStore {
	return &mockMilestoneStore{sent: make(map[string]map[int]bool)}
}

func (m *mockMilestoneStore) MarkSent(_ context.Context, goalID string, threshold int, _ time.Time) (bool, error) {
	if m.sent[goalID] == nil {
		m.sent[goalID] = make(map[int]bool)
	}
	if m.sent[goalID][threshold] {
		return false, nil
	}
	m.sent[goalID][threshold] = true
	return true, nil
}

func (m *mockMilestoneStore) ListSent(_ context.Context, goalID string) ([]int, error) {
	var out []int
	for th := range m.sent[goalID] {
		out = append(out, th)
	}
	return out, nil
}

func (m *mockMilestoneStore) Clear(_ context.Context) error {
	m.sent = make(map[string]map[int]bool)
	return nil
}

// mockNotifier records announcements instead of sending them.
type mockNotifier struct {
	milestones []int
	completed  int
}

func (m *mockNotifier) MilestoneReached(_ context.Context, percent, _, _ int) error {
	m.milestones = append(m.milestones, percent)
	return nil
}

func (m *mockNotifier) GoalCompleted(_ context.Context, _ int) error {
	m.completed++
	return nil
}
