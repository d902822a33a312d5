package domain

// DefaultInput pre-fills the classification text box.
const DefaultInput = "硫化温度从150度提升到155度，硫化时间缩短5分钟，可提高生产效率15%，同时保证轮胎物理性能指标符合标准要求。操作员需要调整设备参数设置，确保温度控制精度在±2度范围内。"

// Notes explain the two instruction types and the classifier.
var Notes = []string{
	"分类型Instruction：对技术文档进行特定类型的转换，如故障排除转换为客户指导",
	"开放型Instruction：对技术文档进行开放式的优化改进，如参数表转换为产品规格说明",
	"分类模型：基于BERT的文本分类器，准确率达到95%",
}

// Overview is the instruction page before any classification.
type Overview struct {
	Notes        []string `json:"notes"`
	DefaultInput string   `json:"default_input"`
}

// Probability is one labelled class probability.
type Probability struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Caption string  `json:"caption"`
}

// Template is the suggested processing template.
type Template struct {
	Description string `json:"description"`
	Input       string `json:"input"`
	Output      string `json:"output"`
}

// Classification is the fixed result of the classify action.
type Classification struct {
	Probabilities []Probability `json:"probabilities"`
	Predicted     string        `json:"predicted"`
	Explanation   string        `json:"explanation"`
	Template      Template      `json:"template"`
}

// FixedClassification is what every classification returns.
var FixedClassification = Classification{
	Probabilities: []Probability{
		{Label: "分类型概率", Value: 0.75, Caption: "75%"},
		{Label: "开放型概率", Value: 0.25, Caption: "25%"},
	},
	Predicted: "分类型Instruction",
	Explanation: "该原始文档属于分类型Instruction，因为它包含了将工程师视角的技术纪要转换为客户友好的产品说明的需求。\n" +
		"文档涉及硫化工艺参数的改进，需要从技术角度转换为客户关注的效益和操作建议。",
	Template: Template{
		Description: "将工程师视角的技术纪要转换为客户友好的产品说明，强调效益和操作建议",
		Input:       "{原始技术文档内容}",
		Output: "通过优化技术参数，在不降低产品质量的前提下，效率提升{具体数值}%。\n" +
			"建议操作人员精确控制参数波动范围±{数值}，以确保过程的一致性和产品质量的稳定性。",
	},
}
