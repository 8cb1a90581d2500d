package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"clinical-eval/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 报表导出复用 ReportService 的汇总结果，写成 Excel (.xlsx)
//   - 评估日导出为 iCalendar 订阅源，每个评估日一个全天事件
//   - 导出内容由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportGroupReport 导出小组报表为 Excel
	ExportGroupReport(ctx context.Context, groupID int64) (*bytes.Buffer, string, error)
	// ExportEvaluationCalendar 导出小组评估日为 .ics
	ExportEvaluationCalendar(ctx context.Context, groupID int64) ([]byte, string, error)
}

type exportService struct {
	repo   *repository.Repository
	report ReportService
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, report ReportService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, report: report, logger: logger, now: time.Now}
}

// ═══════════════════════════════════════════════════════════
// ExportGroupReport — 导出小组报表为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 第 1 行：小组名称
//   - 第 2 行表头：学生 | 学号 | 各评估日 | 态度 | 技能 | 认知 | 总平均
//   - 评估单元格："态度/技能/认知"，缺项显示 "-"
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportGroupReport(ctx context.Context, groupID int64) (*bytes.Buffer, string, error) {
	report, err := s.report.BuildGroupReport(ctx, groupID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "报表"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	dateCount := len(report.EvaluationDates)
	lastCol := 2 + dateCount + 4 // 学生、学号、评估日、四列平均分

	f.SetColWidth(sheetName, "A", "A", 28)
	f.SetColWidth(sheetName, "B", "B", 14)
	if dateCount > 0 {
		f.SetColWidth(sheetName, colName(2), colName(1+dateCount), 12)
	}
	f.SetColWidth(sheetName, colName(2+dateCount), colName(lastCol-1), 10)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", report.Group.Name)
	f.MergeCell(sheetName, "A1", cell(colName(lastCol-1), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	row := 2
	f.SetCellValue(sheetName, cell("A", row), "学生")
	f.SetCellValue(sheetName, cell("B", row), "学号")
	for i, d := range report.EvaluationDates {
		f.SetCellValue(sheetName, cell(colName(2+i), row), d.Date)
	}
	for i, title := range []string{"态度", "技能", "认知", "总平均"} {
		f.SetCellValue(sheetName, cell(colName(2+dateCount+i), row), title)
	}
	f.SetCellStyle(sheetName, cell("A", row), cell(colName(lastCol-1), row), headerStyle)

	// 数据行
	row = 3
	for _, st := range report.Students {
		f.SetCellValue(sheetName, cell("A", row), st.Name)
		if st.Registration != nil {
			f.SetCellValue(sheetName, cell("B", row), *st.Registration)
		}
		for i, d := range report.EvaluationDates {
			text := "-"
			if e, ok := st.Evaluations[d.ID]; ok {
				text = fmt.Sprintf("%s/%s/%s", scoreText(e.AttitudeScore), scoreText(e.SkillScore), scoreText(e.CognitionScore))
			}
			f.SetCellValue(sheetName, cell(colName(2+i), row), text)
		}
		for i, avg := range []*float64{st.Averages.Attitude, st.Averages.Skill, st.Averages.Cognition, st.OverallAverage} {
			c := cell(colName(2+dateCount+i), row)
			if avg == nil {
				f.SetCellValue(sheetName, c, "-")
				continue
			}
			f.SetCellFloat(sheetName, c, *avg, 2, 64)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Int64("group_id", groupID), zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("relatorio_grupo_%d.xlsx", groupID)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportEvaluationCalendar — 评估日 iCalendar
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportEvaluationCalendar(ctx context.Context, groupID int64) ([]byte, string, error) {
	group, err := s.repo.StudentGroup.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrGroupNotFound
		}
		s.logger.Error("查询小组失败", zap.Int64("id", groupID), zap.Error(err))
		return nil, "", err
	}

	dates, err := s.repo.EvaluationDate.ListByGroup(ctx, groupID)
	if err != nil {
		s.logger.Error("查询评估日失败", zap.Int64("group_id", groupID), zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//clinical-eval//evaluation-dates//PT")
	cal.SetXWRCalName(group.Name)

	stamp := s.now().UTC()
	for _, d := range dates {
		event := cal.AddEvent(fmt.Sprintf("evaluation-date-%d@clinical-eval", d.ID))
		event.SetDtStampTime(stamp)
		event.SetAllDayStartAt(d.Date)
		event.SetAllDayEndAt(d.Date.AddDate(0, 0, 1))
		summary := group.Name
		if d.Description != nil && *d.Description != "" {
			summary += " - " + *d.Description
			event.SetDescription(*d.Description)
		}
		event.SetSummary(summary)
	}

	filename := fmt.Sprintf("avaliacoes_grupo_%d.ics", groupID)
	return []byte(cal.Serialize()), filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func scoreText(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
