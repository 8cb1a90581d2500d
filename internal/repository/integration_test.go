//go:build integration

package repository_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"clinical-eval/backend/internal/dto"
	"clinical-eval/backend/internal/model"
	"clinical-eval/backend/internal/repository"
	"clinical-eval/backend/internal/service"
	"clinical-eval/backend/pkg/database"
	pkgerrors "clinical-eval/backend/pkg/errors"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

// TestMain 优先使用 TEST_DATABASE_DSN；未设置时通过 testcontainers 启动临时 PostgreSQL
func TestMain(m *testing.M) {
	ctx := context.Background()
	dsn := os.Getenv("TEST_DATABASE_DSN")

	var container *tcpostgres.PostgresContainer
	if dsn == "" {
		var err error
		container, err = tcpostgres.RunContainer(ctx,
			tc.WithImage("postgres:16-alpine"),
			tcpostgres.WithDatabase("clinical_eval_test"),
			tcpostgres.WithUsername("clinical_eval"),
			tcpostgres.WithPassword("clinical_eval"),
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "无法启动测试数据库容器: %v\n", err)
			os.Exit(1)
		}
		dsn, err = container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			fmt.Fprintf(os.Stderr, "获取容器连接串失败: %v\n", err)
			os.Exit(1)
		}
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := testDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "获取底层 sql.DB 失败: %v\n", err)
		os.Exit(1)
	}
	if err := waitReady(ctx, testDB); err != nil {
		fmt.Fprintf(os.Stderr, "测试数据库未就绪: %v\n", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		fmt.Fprintf(os.Stderr, "执行迁移失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if container != nil {
		_ = container.Terminate(ctx)
	}
	os.Exit(code)
}

func waitReady(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	dead := time.Now().Add(20 * time.Second)
	for time.Now().Before(dead) {
		if err := sqlDB.PingContext(ctx); err == nil {
			return nil
		}
		time.Sleep(200 * time.Millisecond)
	}
	return errors.New("db not ready")
}

// setupGroup 创建卫生单位、带教老师、小组并返回
func setupGroup(t *testing.T, repo *repository.Repository) *model.StudentGroup {
	t.Helper()
	ctx := context.Background()

	unit := &model.HealthUnit{Name: fmt.Sprintf("测试单位-%d", time.Now().UnixNano())}
	if err := repo.HealthUnit.Create(ctx, unit); err != nil {
		t.Fatalf("创建卫生单位失败: %v", err)
	}
	preceptor := &model.Preceptor{Name: "测试带教"}
	if err := repo.Preceptor.Create(ctx, preceptor); err != nil {
		t.Fatalf("创建带教老师失败: %v", err)
	}
	group := &model.StudentGroup{
		Name: "测试小组", Period: "8ª ETAPA", Year: 2025, Semester: 1,
		HealthUnitID: unit.ID, PreceptorID: preceptor.ID,
	}
	if err := repo.StudentGroup.Create(ctx, group); err != nil {
		t.Fatalf("创建小组失败: %v", err)
	}
	return group
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("解析日期失败: %v", err)
	}
	return d
}

// ═══════════════════════════════════════════════════════════
// Test: EvaluationDate ordering
// ═══════════════════════════════════════════════════════════

func TestEvaluationDate_ListByGroup_Ordered(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	group := setupGroup(t, repo)

	inputs := []string{"2025-03-18", "2025-02-11", "2025-03-18", "2025-02-25"}
	created := make([]*model.EvaluationDate, 0, len(inputs))
	for _, s := range inputs {
		d := &model.EvaluationDate{GroupID: group.ID, Date: mustDate(t, s)}
		if err := repo.EvaluationDate.Create(ctx, d); err != nil {
			t.Fatalf("创建评估日失败: %v", err)
		}
		created = append(created, d)
	}

	dates, err := repo.EvaluationDate.ListByGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("ListByGroup 失败: %v", err)
	}
	if len(dates) != 4 {
		t.Fatalf("期望 4 个评估日，实际=%d", len(dates))
	}

	wantIDs := []int64{created[1].ID, created[3].ID, created[0].ID, created[2].ID}
	for i, d := range dates {
		if d.ID != wantIDs[i] {
			t.Errorf("位置 %d 期望 id=%d，实际=%d", i, wantIDs[i], d.ID)
		}
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Evaluation filters & uniqueness
// ═══════════════════════════════════════════════════════════

func TestEvaluation_ListFilters(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	groupA := setupGroup(t, repo)
	groupB := setupGroup(t, repo)

	student := &model.Student{Name: "ISABELA PEREIRA"}
	if err := repo.Student.Create(ctx, student); err != nil {
		t.Fatalf("创建学生失败: %v", err)
	}

	dateA := &model.EvaluationDate{GroupID: groupA.ID, Date: mustDate(t, "2025-02-11")}
	dateB := &model.EvaluationDate{GroupID: groupB.ID, Date: mustDate(t, "2025-02-11")}
	for _, d := range []*model.EvaluationDate{dateA, dateB} {
		if err := repo.EvaluationDate.Create(ctx, d); err != nil {
			t.Fatalf("创建评估日失败: %v", err)
		}
	}

	score := 9.0
	evA := &model.Evaluation{StudentID: student.ID, EvaluationDateID: dateA.ID, AttitudeScore: &score}
	evB := &model.Evaluation{StudentID: student.ID, EvaluationDateID: dateB.ID}
	for _, ev := range []*model.Evaluation{evA, evB} {
		if err := repo.Evaluation.Create(ctx, ev); err != nil {
			t.Fatalf("创建评估失败: %v", err)
		}
	}

	byStudent, err := repo.Evaluation.List(ctx, &repository.EvaluationFilters{StudentID: student.ID})
	if err != nil {
		t.Fatalf("按学生过滤失败: %v", err)
	}
	if len(byStudent) != 2 {
		t.Errorf("期望 2 条评估，实际=%d", len(byStudent))
	}

	byGroup, err := repo.Evaluation.List(ctx, &repository.EvaluationFilters{StudentID: student.ID, GroupID: groupA.ID})
	if err != nil {
		t.Fatalf("按小组过滤失败: %v", err)
	}
	if len(byGroup) != 1 || byGroup[0].ID != evA.ID {
		t.Fatalf("期望仅返回 evA，实际=%+v", byGroup)
	}
	if byGroup[0].AttitudeScore == nil || *byGroup[0].AttitudeScore != 9.0 {
		t.Errorf("attitude_score 应为 9，实际=%v", byGroup[0].AttitudeScore)
	}

	dup := &model.Evaluation{StudentID: student.ID, EvaluationDateID: dateA.ID}
	err = repo.Evaluation.Create(ctx, dup)
	if !errors.Is(pkgerrors.Translate(err), pkgerrors.ErrDuplicate) {
		t.Errorf("重复评估期望 ErrDuplicate，实际: %v", err)
	}

	if err := repo.Evaluation.Delete(ctx, evA.ID); err != nil {
		t.Fatalf("删除评估失败: %v", err)
	}
	if _, err := repo.Evaluation.GetByID(ctx, evA.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("删除后期望 ErrRecordNotFound，实际: %v", err)
	}
}

func TestGroupMembership_Unique(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	group := setupGroup(t, repo)

	student := &model.Student{Name: "INGRID MACEDO"}
	if err := repo.Student.Create(ctx, student); err != nil {
		t.Fatalf("创建学生失败: %v", err)
	}

	if err := repo.GroupMembership.Create(ctx, &model.GroupMembership{StudentID: student.ID, GroupID: group.ID}); err != nil {
		t.Fatalf("创建成员关系失败: %v", err)
	}
	exists, err := repo.GroupMembership.Exists(ctx, student.ID, group.ID)
	if err != nil || !exists {
		t.Fatalf("期望成员关系存在，exists=%v err=%v", exists, err)
	}

	err = repo.GroupMembership.Create(ctx, &model.GroupMembership{StudentID: student.ID, GroupID: group.ID})
	if !errors.Is(pkgerrors.Translate(err), pkgerrors.ErrDuplicate) {
		t.Errorf("重复成员关系期望 ErrDuplicate，实际: %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Transaction Rollback / Commit
// ═══════════════════════════════════════════════════════════

func TestTransaction_Rollback(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	if err != nil {
		t.Fatalf("BeginTx 失败: %v", err)
	}
	txRepo := repo.WithTx(tx)

	unit := &model.HealthUnit{Name: "回滚单位"}
	if err := txRepo.HealthUnit.Create(ctx, unit); err != nil {
		tx.Rollback()
		t.Fatalf("事务内创建卫生单位失败: %v", err)
	}

	tx.Rollback()

	if _, err := repo.HealthUnit.GetByID(ctx, unit.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("期望回滚后查不到卫生单位，实际 err=%v", err)
	}
}

func TestTransaction_Commit(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	if err != nil {
		t.Fatalf("BeginTx 失败: %v", err)
	}
	txRepo := repo.WithTx(tx)

	student := &model.Student{Name: "提交学生"}
	if err := txRepo.Student.Create(ctx, student); err != nil {
		tx.Rollback()
		t.Fatalf("事务内创建学生失败: %v", err)
	}

	if err := tx.Commit().Error; err != nil {
		t.Fatalf("Commit 失败: %v", err)
	}

	found, err := repo.Student.GetByID(ctx, student.ID)
	if err != nil {
		t.Fatalf("提交后查询学生失败: %v", err)
	}
	if found.Name != "提交学生" {
		t.Errorf("期望 Name=提交学生，实际=%s", found.Name)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Import + partial update on PostgreSQL
// ═══════════════════════════════════════════════════════════

func TestImportTwice_ThenPartialUpdate(t *testing.T) {
	repo := repository.NewRepository(testDB)
	svc := service.NewService(repo, nil, zap.NewNop())
	ctx := context.Background()

	before, err := repo.StudentGroup.List(ctx)
	if err != nil {
		t.Fatalf("查询小组失败: %v", err)
	}

	var groupIDs []int64
	for i := 0; i < 2; i++ {
		result, err := svc.Import.ImportSpreadsheet(ctx)
		if err != nil {
			t.Fatalf("第 %d 次导入失败: %v", i+1, err)
		}
		groupIDs = append(groupIDs, result.GroupID)
	}
	if groupIDs[0] == groupIDs[1] {
		t.Fatalf("两次导入应创建不同小组，实际均为 %d", groupIDs[0])
	}

	after, err := repo.StudentGroup.List(ctx)
	if err != nil {
		t.Fatalf("查询小组失败: %v", err)
	}
	if len(after)-len(before) != 2 {
		t.Errorf("两次导入应新增 2 个小组，实际新增 %d", len(after)-len(before))
	}

	var evaluations []model.Evaluation
	for _, gid := range groupIDs {
		evaluations, err = repo.Evaluation.List(ctx, &repository.EvaluationFilters{GroupID: gid})
		if err != nil {
			t.Fatalf("查询小组 %d 评估失败: %v", gid, err)
		}
		if len(evaluations) != 18 {
			t.Errorf("小组 %d 期望 18 条评估，实际 %d", gid, len(evaluations))
		}
	}

	// 仅提交 observations，分数保持不变
	original := evaluations[0]
	var req dto.UpdateEvaluationRequest
	if err := json.Unmarshal([]byte(`{"observations": "revisado"}`), &req); err != nil {
		t.Fatalf("解析请求失败: %v", err)
	}
	if _, err := svc.Evaluation.Update(ctx, original.ID, &req); err != nil {
		t.Fatalf("Update 失败: %v", err)
	}

	stored, err := repo.Evaluation.GetByID(ctx, original.ID)
	if err != nil {
		t.Fatalf("查询评估失败: %v", err)
	}
	if stored.Observations == nil || *stored.Observations != "revisado" {
		t.Errorf("observations 应为 revisado，实际 %v", stored.Observations)
	}
	scores := []struct {
		name      string
		want, got *float64
	}{
		{"attitude", original.AttitudeScore, stored.AttitudeScore},
		{"skill", original.SkillScore, stored.SkillScore},
		{"cognition", original.CognitionScore, stored.CognitionScore},
	}
	for _, sc := range scores {
		if sc.want == nil || sc.got == nil || *sc.want != *sc.got {
			t.Errorf("%s 分数不应变化: %v → %v", sc.name, sc.want, sc.got)
		}
	}
	if !stored.CreatedAt.Equal(original.CreatedAt) {
		t.Errorf("created_at 不应变化: %v → %v", original.CreatedAt, stored.CreatedAt)
	}
}
