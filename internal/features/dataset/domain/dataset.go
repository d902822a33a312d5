package domain

import "errors"

// ErrCaseNotFound is returned when a case reference matches nothing in the catalog.
var ErrCaseNotFound = errors.New("case not found")

// Instruction type labels.
const (
	InstructionClassification = "分类型"
	InstructionOpen           = "开放型"
)

// Metrics are the fixed quality scores attached to a case, each in [0,1].
type Metrics struct {
	RougeL              float64 `json:"rouge_l" yaml:"rouge_l"`
	BLEU                float64 `json:"bleu" yaml:"bleu"`
	SemanticSimilarity  float64 `json:"semantic_similarity" yaml:"semantic_similarity"`
	PerspectiveAccuracy float64 `json:"perspective_accuracy" yaml:"perspective_accuracy"`
}

// Case is one illustrative before/after pair.
type Case struct {
	Key             string  `json:"key" yaml:"key"`
	Title           string  `json:"title" yaml:"title"`
	OriginalText    string  `json:"original_text" yaml:"original_text"`
	OptimizedText   string  `json:"optimized_text" yaml:"optimized_text"`
	InstructionType string  `json:"instruction_type" yaml:"instruction_type"`
	Category        string  `json:"category" yaml:"category"`
	Metrics         Metrics `json:"metrics" yaml:"metrics"`
}

// MetricBar is one labelled progress bar of the case analysis panel.
type MetricBar struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Caption string  `json:"caption"`
}

// CaseView is a case together with its rendered analysis bars.
type CaseView struct {
	Case
	Bars []MetricBar `json:"bars"`
}

// Overview describes where the data comes from and how it is split.
type Overview struct {
	Notes          []string `json:"notes"`
	CaseKeys       []string `json:"case_keys"`
	TrainSize      int      `json:"train_size"`
	ValidationSize int      `json:"validation_size"`
	TestSize       int      `json:"test_size"`
}

// OverviewNotes are the data-processing bullets shown above the case selector.
var OverviewNotes = []string{
	"数据来源：Kaggle轮胎制造工艺开源数据集和汽车工程开源文档库",
	"数据预处理：数据清洗、格式标准化、标签规范化",
	"Instruction类型：分为分类型和开放型两种主要类型",
	"训练集大小：8000条，验证集大小：2000条，测试集大小：1000条",
}

// Dataset split sizes.
const (
	TrainSize      = 8000
	ValidationSize = 2000
	TestSize       = 1000
)
