package domain

import "errors"

// ErrUnknownKind is returned for an evaluation view that does not exist.
var ErrUnknownKind = errors.New("unknown evaluation kind")

// Kind selects one of the three evaluation views.
type Kind string

const (
	KindAuto     Kind = "auto"
	KindManual   Kind = "manual"
	KindCombined Kind = "combined"
)

// Labels maps each kind to its display label.
var Labels = map[Kind]string{
	KindAuto:     "自动评估",
	KindManual:   "人工评估",
	KindCombined: "综合评估",
}

// Kinds lists the views in display order.
var Kinds = []Kind{KindAuto, KindManual, KindCombined}

// Notes explain the evaluation method.
var Notes = []string{
	"自动评估：使用ROUGE、BLEU、语义相似度等指标衡量生成文本质量",
	"人工评估：由轮胎制造业专家对生成文本的专业性、可读性进行评分",
	"测试集：包含1000条未见过的新样本，涵盖不同类型的文档转换任务",
	"评估维度：语言流畅度、信息完整性、视角转换准确度、专业术语准确性",
}

// Score is one labelled progress bar.
type Score struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Caption string  `json:"caption"`
}

// Series is one line of a chart.
type Series struct {
	Name   string    `json:"name"`
	Points []float64 `json:"points"`
}

// Bar is one bar of the combined radar substitute.
type Bar struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// KindOption is a selectable view.
type KindOption struct {
	Kind  Kind   `json:"kind"`
	Label string `json:"label"`
}

// Overview is the evaluation page before a view is chosen.
type Overview struct {
	Notes []string     `json:"notes"`
	Kinds []KindOption `json:"kinds"`
}

// Report is the fixed content of one evaluation view.
type Report struct {
	Kind    Kind     `json:"kind"`
	Title   string   `json:"title"`
	Scores  []Score  `json:"scores"`
	Curves  []Series `json:"curves,omitempty"`
	Summary string   `json:"summary,omitempty"`
	Grade   string   `json:"grade,omitempty"`
	Bars    []Bar    `json:"bars,omitempty"`
}

var autoReport = Report{
	Kind:  KindAuto,
	Title: "📊 自动评估结果",
	Scores: []Score{
		{Label: "ROUGE-L得分", Value: 0.812, Caption: "0.812"},
		{Label: "BLEU得分", Value: 0.745, Caption: "0.745"},
		{Label: "语义相似度", Value: 0.876, Caption: "0.876"},
		{Label: "视角转换准确度", Value: 0.923, Caption: "0.923"},
	},
	Curves: []Series{
		{Name: "ROUGE-L", Points: []float64{0.5, 0.6, 0.65, 0.7, 0.75, 0.78, 0.8, 0.81, 0.812}},
		{Name: "BLEU", Points: []float64{0.4, 0.5, 0.55, 0.6, 0.65, 0.7, 0.73, 0.74, 0.745}},
		{Name: "语义相似度", Points: []float64{0.6, 0.7, 0.75, 0.8, 0.82, 0.84, 0.86, 0.87, 0.876}},
		{Name: "视角转换准确度", Points: []float64{0.7, 0.75, 0.8, 0.85, 0.88, 0.9, 0.91, 0.92, 0.923}},
	},
}

var manualReport = Report{
	Kind:  KindManual,
	Title: "👨‍🔬 人工评估结果",
	Scores: []Score{
		{Label: "语言流畅度", Value: 0.91, Caption: "4.55/5"},
		{Label: "信息完整性", Value: 0.88, Caption: "4.4/5"},
		{Label: "专业术语准确性", Value: 0.93, Caption: "4.65/5"},
		{Label: "视角转换准确度", Value: 0.9, Caption: "4.5/5"},
	},
	Summary: "经过5位轮胎制造业专家的综合评估，模型生成的技术文档在专业术语使用和视角转换方面表现优秀。\n" +
		"生成文本保持了原始技术信息的准确性，同时增强了可读性和客户友好度。\n" +
		"文档结构清晰，技术细节完整，特别是工艺参数改进的效益表达更加直观。\n" +
		"建议在实际应用中对专业术语的标准化进行进一步优化。",
}

var combinedReport = Report{
	Kind:  KindCombined,
	Title: "📊 综合评估结果",
	Scores: []Score{
		{Label: "自动评估平均分", Value: 0.852, Caption: "0.852/1.0"},
		{Label: "人工评估平均分", Value: 0.905, Caption: "4.525/5"},
		{Label: "综合得分", Value: 0.878, Caption: "0.878/1.0"},
	},
	Grade: "A",
	Bars: []Bar{
		{Label: "语言流畅度", Value: 0.91},
		{Label: "信息完整性", Value: 0.88},
		{Label: "专业术语准确性", Value: 0.93},
		{Label: "视角转换准确度", Value: 0.90},
		{Label: "技术细节完整性", Value: 0.87},
	},
}

// Reports holds the fixed content of every view.
var Reports = map[Kind]Report{
	KindAuto:     autoReport,
	KindManual:   manualReport,
	KindCombined: combinedReport,
}
