package dto

// ── 小组报表 DTO ──

// ReportResponse 小组评估报表
type ReportResponse struct {
	Group           GroupResponse            `json:"group"`
	Students        []ReportStudent          `json:"students"`
	EvaluationDates []EvaluationDateResponse `json:"evaluation_dates"`
}

// ReportStudent 报表中的单个学生
// Evaluations 以 evaluation_date_id 为键，仅包含已评估的日期
type ReportStudent struct {
	ID             int64                        `json:"id"`
	Name           string                       `json:"name"`
	Registration   *string                      `json:"registration"`
	CreatedAt      string                       `json:"created_at"`
	Evaluations    map[int64]EvaluationResponse `json:"evaluations"`
	Averages       ScoreAverages                `json:"averages"`
	OverallAverage *float64                     `json:"overall_average"`
}

// ScoreAverages 三项分数的平均值，无分数时为 null
type ScoreAverages struct {
	Attitude  *float64 `json:"attitude"`
	Skill     *float64 `json:"skill"`
	Cognition *float64 `json:"cognition"`
}

// ── 导入 ──

// ImportResponse 示例数据导入结果
type ImportResponse struct {
	Message string `json:"message"`
	GroupID int64  `json:"group_id"`
}
