package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/example/hrdesk/internal/ctxutil"
	hrerrors "github.com/example/hrdesk/internal/errors"
	"github.com/example/hrdesk/internal/ports/secondary"
)

// Ensure mocks implement the interfaces
var (
	_ secondary.EmployeeRepository      = (*mockEmployeeRepository)(nil)
	_ secondary.PositionRepository      = (*mockPositionRepository)(nil)
	_ secondary.SalaryHistoryRepository = (*mockSalaryHistoryRepository)(nil)
	_ secondary.AuditLogRepository      = (*mockAuditLogRepository)(nil)
	_ secondary.LogWriter               = (*mockLogWriter)(nil)
)

// ============================================================================
// mockEmployeeRepository
// ============================================================================

type mockEmployeeRepository struct {
	mu        sync.Mutex
	employees map[string]*secondary.EmployeeRecord
	listErr   error
	listCalls int
	updateErr error
}

func newMockEmployeeRepository() *mockEmployeeRepository {
	return &mockEmployeeRepository{employees: make(map[string]*secondary.EmployeeRecord)}
}

func (m *mockEmployeeRepository) add(id, positionID string, active bool) {
	m.employees[id] = &secondary.EmployeeRecord{ID: id, FirstName: "First", LastName: id, PositionID: positionID, Active: active}
}

func (m *mockEmployeeRepository) Create(ctx context.Context, employee *secondary.EmployeeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *employee
	m.employees[employee.ID] = &cp
	return nil
}

func (m *mockEmployeeRepository) GetByID(ctx context.Context, id string) (*secondary.EmployeeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.employees[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, hrerrors.NewNotFoundError("employee", id)
}

func (m *mockEmployeeRepository) List(ctx context.Context, filters secondary.EmployeeFilters) ([]*secondary.EmployeeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.EmployeeRecord
	for _, e := range m.employees {
		if filters.PositionID != "" && e.PositionID != filters.PositionID {
			continue
		}
		if filters.Active != nil && e.Active != *filters.Active {
			continue
		}
		cp := *e
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockEmployeeRepository) Update(ctx context.Context, employee *secondary.EmployeeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.employees[employee.ID]; !ok {
		return hrerrors.NewNotFoundError("employee", employee.ID)
	}
	cp := *employee
	m.employees[employee.ID] = &cp
	return nil
}

func (m *mockEmployeeRepository) GetNextID(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fmt.Sprintf("EMP-%03d", len(m.employees)+1), nil
}

// ============================================================================
// mockPositionRepository
// ============================================================================

type mockPositionRepository struct {
	mu        sync.Mutex
	positions map[string]*secondary.PositionRecord
	updateErr error
}

func newMockPositionRepository() *mockPositionRepository {
	return &mockPositionRepository{positions: make(map[string]*secondary.PositionRecord)}
}

func (m *mockPositionRepository) Create(ctx context.Context, position *secondary.PositionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *position
	m.positions[position.ID] = &cp
	return nil
}

func (m *mockPositionRepository) GetByID(ctx context.Context, id string) (*secondary.PositionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.positions[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, hrerrors.NewNotFoundError("position", id)
}

func (m *mockPositionRepository) List(ctx context.Context, filters secondary.PositionFilters) ([]*secondary.PositionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*secondary.PositionRecord
	for _, p := range m.positions {
		if filters.Active != nil && p.Active != *filters.Active {
			continue
		}
		cp := *p
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockPositionRepository) Update(ctx context.Context, position *secondary.PositionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.positions[position.ID]; !ok {
		return hrerrors.NewNotFoundError("position", position.ID)
	}
	cp := *position
	m.positions[position.ID] = &cp
	return nil
}

func (m *mockPositionRepository) GetNextID(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fmt.Sprintf("POS-%03d", len(m.positions)+1), nil
}

// ============================================================================
// mockSalaryHistoryRepository
// ============================================================================

// mockSalaryHistoryRepository is safe for the reconciler's concurrent writes.
// Failures can be injected per record (updates) or per employee (creates).
type mockSalaryHistoryRepository struct {
	mu        sync.Mutex
	records   map[string]*secondary.SalaryHistoryRecord
	nextID    int
	listErr   error
	listCalls int

	updateErrByID       map[string]error
	createErrByEmployee map[string]error

	updates []string // record IDs passed to Update, in call order
	creates []string // employee IDs passed to Create, in call order
}

func newMockSalaryHistoryRepository() *mockSalaryHistoryRepository {
	return &mockSalaryHistoryRepository{
		records:             make(map[string]*secondary.SalaryHistoryRecord),
		nextID:              1,
		updateErrByID:       make(map[string]error),
		createErrByEmployee: make(map[string]error),
	}
}

func (m *mockSalaryHistoryRepository) seed(rec secondary.SalaryHistoryRecord) {
	m.records[rec.ID] = &rec
	var n int
	if _, err := fmt.Sscanf(rec.ID, "SALH-%d", &n); err == nil && n >= m.nextID {
		m.nextID = n + 1
	}
}

func (m *mockSalaryHistoryRepository) Create(ctx context.Context, record *secondary.SalaryHistoryRecord) (*secondary.SalaryHistoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates = append(m.creates, record.EmployeeID)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := m.createErrByEmployee[record.EmployeeID]; err != nil {
		return nil, err
	}
	cp := *record
	if cp.ID == "" {
		cp.ID = fmt.Sprintf("SALH-%03d", m.nextID)
		m.nextID++
	}
	m.records[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *mockSalaryHistoryRepository) GetByID(ctx context.Context, id string) (*secondary.SalaryHistoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.records[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, hrerrors.NewNotFoundError("salary history record", id)
}

func (m *mockSalaryHistoryRepository) List(ctx context.Context, filters secondary.SalaryHistoryFilters) ([]*secondary.SalaryHistoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.SalaryHistoryRecord
	for _, r := range m.records {
		if filters.EmployeeID != "" && r.EmployeeID != filters.EmployeeID {
			continue
		}
		if filters.PositionID != "" && r.PositionID != filters.PositionID {
			continue
		}
		if filters.OpenOnly && (!r.Active || strings.TrimSpace(r.EndDate) != "") {
			continue
		}
		cp := *r
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].StartDate != result[j].StartDate {
			return result[i].StartDate > result[j].StartDate
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (m *mockSalaryHistoryRepository) Update(ctx context.Context, record *secondary.SalaryHistoryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, record.ID)
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.updateErrByID[record.ID]; err != nil {
		return err
	}
	if _, ok := m.records[record.ID]; !ok {
		return hrerrors.NewNotFoundError("salary history record", record.ID)
	}
	cp := *record
	m.records[record.ID] = &cp
	return nil
}

func (m *mockSalaryHistoryRepository) GetNextID(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fmt.Sprintf("SALH-%03d", m.nextID), nil
}

// snapshot returns a copy of every record keyed by ID.
func (m *mockSalaryHistoryRepository) snapshot() map[string]secondary.SalaryHistoryRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]secondary.SalaryHistoryRecord, len(m.records))
	for id, r := range m.records {
		out[id] = *r
	}
	return out
}

// openFor returns the open records of an (employee, position) pair.
func (m *mockSalaryHistoryRepository) openFor(employeeID, positionID string) []secondary.SalaryHistoryRecord {
	var out []secondary.SalaryHistoryRecord
	for _, r := range m.snapshot() {
		if r.EmployeeID == employeeID && r.PositionID == positionID && r.Active && r.EndDate == "" {
			out = append(out, r)
		}
	}
	return out
}

// ============================================================================
// mockAuditLogRepository
// ============================================================================

type mockAuditLogRepository struct {
	logs   map[string]*secondary.AuditLogRecord
	pruned int
}

func newMockAuditLogRepository() *mockAuditLogRepository {
	return &mockAuditLogRepository{logs: make(map[string]*secondary.AuditLogRecord)}
}

func (m *mockAuditLogRepository) Create(ctx context.Context, log *secondary.AuditLogRecord) error {
	m.logs[log.ID] = log
	return nil
}

func (m *mockAuditLogRepository) GetByID(ctx context.Context, id string) (*secondary.AuditLogRecord, error) {
	if l, ok := m.logs[id]; ok {
		return l, nil
	}
	return nil, hrerrors.NewNotFoundError("audit log", id)
}

func (m *mockAuditLogRepository) List(ctx context.Context, filters secondary.AuditLogFilters) ([]*secondary.AuditLogRecord, error) {
	var result []*secondary.AuditLogRecord
	for _, l := range m.logs {
		if filters.EntityType != "" && l.EntityType != filters.EntityType {
			continue
		}
		if filters.EntityID != "" && l.EntityID != filters.EntityID {
			continue
		}
		if filters.ActorID != "" && l.ActorID != filters.ActorID {
			continue
		}
		if filters.Action != "" && l.Action != filters.Action {
			continue
		}
		result = append(result, l)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	if filters.Limit > 0 && len(result) > filters.Limit {
		result = result[:filters.Limit]
	}
	return result, nil
}

func (m *mockAuditLogRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("LOG-%04d", len(m.logs)+1), nil
}

func (m *mockAuditLogRepository) PruneOlderThan(ctx context.Context, days int) (int, error) {
	return m.pruned, nil
}

// ============================================================================
// mockLogWriter
// ============================================================================

type mockLogWriter struct {
	mu      sync.Mutex
	entries []string // "action entity_type entity_id [field old->new]"
	runIDs  []string // run ID carried by the context of each entry
	err     error
}

func (m *mockLogWriter) record(ctx context.Context, entry string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, entry)
	m.runIDs = append(m.runIDs, ctxutil.RunIDFromContext(ctx))
	return nil
}

func (m *mockLogWriter) LogCreate(ctx context.Context, entityType, entityID string) error {
	return m.record(ctx, fmt.Sprintf("create %s %s", entityType, entityID))
}

func (m *mockLogWriter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	return m.record(ctx, fmt.Sprintf("update %s %s %s %s->%s", entityType, entityID, fieldName, oldValue, newValue))
}

func (m *mockLogWriter) LogDelete(ctx context.Context, entityType, entityID string) error {
	return m.record(ctx, fmt.Sprintf("delete %s %s", entityType, entityID))
}

func (m *mockLogWriter) LogReconcile(ctx context.Context, positionID string, updated, skipped, failed int) error {
	return m.record(ctx, fmt.Sprintf("reconcile position %s updated=%d skipped=%d failed=%d", positionID, updated, skipped, failed))
}
