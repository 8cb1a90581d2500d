package service

import (
	"context"

	"go.uber.org/zap"

	"clinical-eval/backend/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	HealthUnit HealthUnitService
	Preceptor  PreceptorService
	Student    StudentService
	Group      GroupService
	Evaluation EvaluationService
	Report     ReportService
	Export     ExportService
	Import     ImportService
}

// ReportCache 小组报表缓存，可为 nil（不启用缓存）
//
// 每个小组带一个代数（generation），InvalidateReport 使其递增。
// SetReport 仅在代数与构建前读取的一致时写入，避免旧报表回填。
type ReportCache interface {
	GetReport(ctx context.Context, groupID int64) ([]byte, bool, error)
	ReportGeneration(ctx context.Context, groupID int64) (int64, error)
	SetReport(ctx context.Context, groupID int64, generation int64, data []byte) (bool, error)
	InvalidateReport(ctx context.Context, groupID int64) error
}

// NewService 创建 Service 聚合
func NewService(repo *repository.Repository, cache ReportCache, logger *zap.Logger) *Service {
	report := NewReportService(repo, cache, logger)
	return &Service{
		HealthUnit: NewHealthUnitService(repo, logger),
		Preceptor:  NewPreceptorService(repo, logger),
		Student:    NewStudentService(repo, logger),
		Group:      NewGroupService(repo, cache, logger),
		Evaluation: NewEvaluationService(repo, cache, logger),
		Report:     report,
		Export:     NewExportService(repo, report, logger),
		Import:     NewImportService(repo, logger),
	}
}

// runInTx 在事务中执行 fn：fn 返回错误或 panic 时回滚，否则提交
// repo 未绑定数据库（单元测试 mock）时直接在原 Repository 上执行
func runInTx(ctx context.Context, repo *repository.Repository, logger *zap.Logger, fn func(txRepo *repository.Repository) error) (err error) {
	tx, err := repo.BeginTx(ctx)
	if err != nil {
		logger.Error("开启事务失败", zap.Error(err))
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	if err := fn(repo.WithTx(tx)); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			logger.Error("提交事务失败", zap.Error(err))
			return err
		}
	}
	return nil
}
