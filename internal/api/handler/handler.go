package handler

import "clinical-eval/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	HealthUnit *HealthUnitHandler
	Preceptor  *PreceptorHandler
	Student    *StudentHandler
	Group      *GroupHandler
	Evaluation *EvaluationHandler
	Report     *ReportHandler
	Export     *ExportHandler
	Import     *ImportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		HealthUnit: NewHealthUnitHandler(svc.HealthUnit),
		Preceptor:  NewPreceptorHandler(svc.Preceptor),
		Student:    NewStudentHandler(svc.Student),
		Group:      NewGroupHandler(svc.Group),
		Evaluation: NewEvaluationHandler(svc.Evaluation),
		Report:     NewReportHandler(svc.Report),
		Export:     NewExportHandler(svc.Export),
		Import:     NewImportHandler(svc.Import),
	}
}
