package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"clinical-eval/backend/internal/model"
	"clinical-eval/backend/internal/repository"
)

// ── 内存数据源：所有 mock 共享，便于跨表查询 ──

type mockStore struct {
	nextID      int64
	units       map[int64]*model.HealthUnit
	preceptors  map[int64]*model.Preceptor
	students    map[int64]*model.Student
	groups      map[int64]*model.StudentGroup
	memberships map[int64]*model.GroupMembership
	dates       map[int64]*model.EvaluationDate
	evaluations map[int64]*model.Evaluation

	// failOn 非空时，对应实体的 Create 返回该错误
	failOn map[string]error
}

func newMockStore() *mockStore {
	return &mockStore{
		units:       make(map[int64]*model.HealthUnit),
		preceptors:  make(map[int64]*model.Preceptor),
		students:    make(map[int64]*model.Student),
		groups:      make(map[int64]*model.StudentGroup),
		memberships: make(map[int64]*model.GroupMembership),
		dates:       make(map[int64]*model.EvaluationDate),
		evaluations: make(map[int64]*model.Evaluation),
		failOn:      make(map[string]error),
	}
}

func (s *mockStore) id() int64 {
	s.nextID++
	return s.nextID
}

func sortedKeys[T any](m map[int64]T) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// newMockRepository 用内存 mock 组装 Repository（db 为 nil，事务退化为直接执行）
func newMockRepository(store *mockStore) *repository.Repository {
	return &repository.Repository{
		HealthUnit:      &mockHealthUnitRepo{store},
		Preceptor:       &mockPreceptorRepo{store},
		Student:         &mockStudentRepo{store},
		StudentGroup:    &mockStudentGroupRepo{store},
		GroupMembership: &mockMembershipRepo{store},
		EvaluationDate:  &mockEvaluationDateRepo{store},
		Evaluation:      &mockEvaluationRepo{store},
	}
}

// ── Mock HealthUnitRepository ──

type mockHealthUnitRepo struct{ s *mockStore }

func (m *mockHealthUnitRepo) Create(_ context.Context, unit *model.HealthUnit) error {
	if err := m.s.failOn["health_unit"]; err != nil {
		return err
	}
	unit.ID = m.s.id()
	unit.CreatedAt = time.Now()
	m.s.units[unit.ID] = unit
	return nil
}

func (m *mockHealthUnitRepo) GetByID(_ context.Context, id int64) (*model.HealthUnit, error) {
	if u, ok := m.s.units[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHealthUnitRepo) List(_ context.Context) ([]model.HealthUnit, error) {
	var result []model.HealthUnit
	for _, k := range sortedKeys(m.s.units) {
		result = append(result, *m.s.units[k])
	}
	return result, nil
}

// ── Mock PreceptorRepository ──

type mockPreceptorRepo struct{ s *mockStore }

func (m *mockPreceptorRepo) Create(_ context.Context, p *model.Preceptor) error {
	if err := m.s.failOn["preceptor"]; err != nil {
		return err
	}
	p.ID = m.s.id()
	p.CreatedAt = time.Now()
	m.s.preceptors[p.ID] = p
	return nil
}

func (m *mockPreceptorRepo) GetByID(_ context.Context, id int64) (*model.Preceptor, error) {
	if p, ok := m.s.preceptors[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPreceptorRepo) List(_ context.Context) ([]model.Preceptor, error) {
	var result []model.Preceptor
	for _, k := range sortedKeys(m.s.preceptors) {
		result = append(result, *m.s.preceptors[k])
	}
	return result, nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct{ s *mockStore }

func (m *mockStudentRepo) Create(_ context.Context, st *model.Student) error {
	if err := m.s.failOn["student"]; err != nil {
		return err
	}
	st.ID = m.s.id()
	st.CreatedAt = time.Now()
	m.s.students[st.ID] = st
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id int64) (*model.Student, error) {
	if st, ok := m.s.students[id]; ok {
		return st, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) List(_ context.Context) ([]model.Student, error) {
	var result []model.Student
	for _, k := range sortedKeys(m.s.students) {
		result = append(result, *m.s.students[k])
	}
	return result, nil
}

func (m *mockStudentRepo) ListByIDs(_ context.Context, ids []int64) ([]model.Student, error) {
	var result []model.Student
	for _, id := range ids {
		if st, ok := m.s.students[id]; ok {
			result = append(result, *st)
		}
	}
	return result, nil
}

// ── Mock StudentGroupRepository ──

type mockStudentGroupRepo struct{ s *mockStore }

func (m *mockStudentGroupRepo) Create(_ context.Context, g *model.StudentGroup) error {
	if err := m.s.failOn["group"]; err != nil {
		return err
	}
	g.ID = m.s.id()
	g.CreatedAt = time.Now()
	m.s.groups[g.ID] = g
	return nil
}

func (m *mockStudentGroupRepo) GetByID(_ context.Context, id int64) (*model.StudentGroup, error) {
	if g, ok := m.s.groups[id]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentGroupRepo) List(_ context.Context) ([]model.StudentGroup, error) {
	var result []model.StudentGroup
	for _, k := range sortedKeys(m.s.groups) {
		result = append(result, *m.s.groups[k])
	}
	return result, nil
}

// ── Mock GroupMembershipRepository ──

type mockMembershipRepo struct{ s *mockStore }

func (m *mockMembershipRepo) Create(_ context.Context, gm *model.GroupMembership) error {
	if err := m.s.failOn["membership"]; err != nil {
		return err
	}
	gm.ID = m.s.id()
	gm.CreatedAt = time.Now()
	m.s.memberships[gm.ID] = gm
	return nil
}

func (m *mockMembershipRepo) ListByGroup(_ context.Context, groupID int64) ([]model.GroupMembership, error) {
	var result []model.GroupMembership
	for _, k := range sortedKeys(m.s.memberships) {
		if gm := m.s.memberships[k]; gm.GroupID == groupID {
			result = append(result, *gm)
		}
	}
	return result, nil
}

func (m *mockMembershipRepo) Exists(_ context.Context, studentID, groupID int64) (bool, error) {
	for _, gm := range m.s.memberships {
		if gm.StudentID == studentID && gm.GroupID == groupID {
			return true, nil
		}
	}
	return false, nil
}

// ── Mock EvaluationDateRepository ──

type mockEvaluationDateRepo struct{ s *mockStore }

func (m *mockEvaluationDateRepo) Create(_ context.Context, d *model.EvaluationDate) error {
	if err := m.s.failOn["evaluation_date"]; err != nil {
		return err
	}
	d.ID = m.s.id()
	d.CreatedAt = time.Now()
	m.s.dates[d.ID] = d
	return nil
}

func (m *mockEvaluationDateRepo) GetByID(_ context.Context, id int64) (*model.EvaluationDate, error) {
	if d, ok := m.s.dates[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEvaluationDateRepo) ListByGroup(_ context.Context, groupID int64) ([]model.EvaluationDate, error) {
	var result []model.EvaluationDate
	for _, k := range sortedKeys(m.s.dates) {
		if d := m.s.dates[k]; d.GroupID == groupID {
			result = append(result, *d)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

// ── Mock EvaluationRepository ──

type mockEvaluationRepo struct{ s *mockStore }

func (m *mockEvaluationRepo) Create(_ context.Context, e *model.Evaluation) error {
	if err := m.s.failOn["evaluation"]; err != nil {
		return err
	}
	e.ID = m.s.id()
	m.s.evaluations[e.ID] = e
	return nil
}

func (m *mockEvaluationRepo) GetByID(_ context.Context, id int64) (*model.Evaluation, error) {
	if e, ok := m.s.evaluations[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEvaluationRepo) List(_ context.Context, filters *repository.EvaluationFilters) ([]model.Evaluation, error) {
	var result []model.Evaluation
	for _, k := range sortedKeys(m.s.evaluations) {
		e := m.s.evaluations[k]
		if filters.StudentID != 0 && e.StudentID != filters.StudentID {
			continue
		}
		if filters.GroupID != 0 {
			d, ok := m.s.dates[e.EvaluationDateID]
			if !ok || d.GroupID != filters.GroupID {
				continue
			}
		}
		result = append(result, *e)
	}
	return result, nil
}

func (m *mockEvaluationRepo) ListByGroup(ctx context.Context, groupID int64) ([]model.Evaluation, error) {
	return m.List(ctx, &repository.EvaluationFilters{GroupID: groupID})
}

func (m *mockEvaluationRepo) Exists(_ context.Context, studentID, evaluationDateID int64) (bool, error) {
	for _, e := range m.s.evaluations {
		if e.StudentID == studentID && e.EvaluationDateID == evaluationDateID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockEvaluationRepo) Update(_ context.Context, e *model.Evaluation) error {
	if _, ok := m.s.evaluations[e.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *e
	m.s.evaluations[e.ID] = &cp
	return nil
}

func (m *mockEvaluationRepo) Delete(_ context.Context, id int64) error {
	delete(m.s.evaluations, id)
	return nil
}

// ── Mock ReportCache ──

type mockReportCache struct {
	data        map[int64][]byte
	generations map[int64]int64
	invalidated []int64
	// beforeSet 在写入前执行一次，模拟报表构建期间的并发写入
	beforeSet func()
}

func newMockReportCache() *mockReportCache {
	return &mockReportCache{data: make(map[int64][]byte), generations: make(map[int64]int64)}
}

func (c *mockReportCache) GetReport(_ context.Context, groupID int64) ([]byte, bool, error) {
	d, ok := c.data[groupID]
	return d, ok, nil
}

func (c *mockReportCache) ReportGeneration(_ context.Context, groupID int64) (int64, error) {
	return c.generations[groupID], nil
}

func (c *mockReportCache) SetReport(_ context.Context, groupID, generation int64, data []byte) (bool, error) {
	if fn := c.beforeSet; fn != nil {
		c.beforeSet = nil
		fn()
	}
	if c.generations[groupID] != generation {
		return false, nil
	}
	c.data[groupID] = data
	return true, nil
}

func (c *mockReportCache) InvalidateReport(_ context.Context, groupID int64) error {
	c.generations[groupID]++
	delete(c.data, groupID)
	c.invalidated = append(c.invalidated, groupID)
	return nil
}
