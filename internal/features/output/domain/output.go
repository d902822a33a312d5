package domain

import "errors"

// ErrUnknownFormat is returned for a download format other than pdf or docx.
var ErrUnknownFormat = errors.New("unknown download format")

// CannedOptimization is the text every optimisation and API call returns.
const CannedOptimization = "通过优化硫化工艺参数（温度提升至155℃，时间缩短5分钟），在不降低产品质量的前提下，生产效率提升15%。建议操作人员精确控制温度波动范围±2℃，以确保硫化过程的一致性和产品质量的稳定性。"

const (
	DefaultOptimizeInput = "硫化温度从150度提升到155度，硫化时间缩短5分钟，可提高生产效率15%，同时保证轮胎物理性能指标符合标准要求。操作员需要调整设备参数设置，确保温度控制精度在±2度范围内。"
	DefaultAPIInput      = "轮胎硫化温度从150度提升到155度，硫化时间缩短5分钟，可提高生产效率15%"

	ReportGeneratedMessage = "报告生成成功!"
	APISuccessMessage      = "API调用成功!"
)

// Notes describe the output features.
var Notes = []string{
	"文本优化：基于微调后的ChatGLM3-6B模型对输入的技术文档进行优化",
	"报告生成：生成包含优化前后对比、评估指标等内容的详细报告",
	"API接口：提供RESTful API接口，支持集成到其他系统中",
	"导出格式：支持PDF、Word、Markdown等多种格式导出",
}

// InstructionTypes are the choices of the API demo.
var InstructionTypes = []string{"分类型", "开放型"}

// Report option labels, in display order.
const (
	OptionComparison = "优化前后对比"
	OptionMetrics    = "评估指标"
	OptionExperts    = "专家评价"
	OptionAPIDocs    = "API接口文档"
	OptionAdvice     = "使用建议"
)

var ReportOptions = []string{OptionComparison, OptionMetrics, OptionExperts, OptionAPIDocs, OptionAdvice}

// ReportBlocks holds the Markdown emitted for each option.
var ReportBlocks = map[string]string{
	OptionComparison: `### 优化前后对比

| 指标 | 原始文档 | 优化后文档 |
|------|---------|-----------|
| 可读性 | 3/5 | 4.5/5 |
| 专业性 | 4/5 | 4.5/5 |
| 客户友好度 | 2/5 | 4.5/5 |
| 信息完整性 | 4.5/5 | 4.5/5 |
`,
	OptionMetrics: `### 评估指标

| 指标 | 得分 |
|------|------|
| ROUGE-L | 0.812 |
| BLEU | 0.745 |
| 语义相似度 | 0.876 |
| 视角转换准确度 | 0.923 |
`,
	OptionExperts: `### 专家评价

经过5位轮胎制造业专家的综合评估，模型生成的技术文档在专业术语使用和视角转换方面表现优秀。
生成文本保持了原始技术信息的准确性，同时增强了可读性和客户友好度。
`,
	OptionAPIDocs: "### API接口文档\n\n" +
		"```python\n" +
		"import requests\n\n" +
		"url = \"http://localhost:8000/api/v1/text-optimization\"\n" +
		"headers = {\"Content-Type\": \"application/json\"}\n" +
		"data = {\n" +
		"    \"text\": \"需要优化的技术文档内容\",\n" +
		"    \"instruction_type\": \"分类\"\n" +
		"}\n\n" +
		"response = requests.post(url, headers=headers, json=data)\n" +
		"result = response.json()\n" +
		"print(result[\"optimized_text\"])\n" +
		"```\n",
	OptionAdvice: `### 使用建议

1. 对于不同类型的文档，建议选择相应的Instruction类型
2. 定期更新微调数据，以提高模型在特定场景下的表现
3. 结合人工审核，确保最终输出符合企业标准
4. 考虑建立多级审核流程，提高文档质量
`,
}

// Download is a placeholder export. Data is a literal, not a real document.
type Download struct {
	Format   string `json:"format"`
	Label    string `json:"label"`
	FileName string `json:"file_name"`
	MIMEType string `json:"mime_type"`
	URL      string `json:"url"`
	Data     []byte `json:"-"`
}

// Downloads lists the two export placeholders.
var Downloads = []Download{
	{
		Format:   "pdf",
		Label:    "📄 下载PDF报告",
		FileName: "轮胎制造业AI优化报告.pdf",
		MIMEType: "application/pdf",
		Data:     []byte("模拟PDF内容"),
	},
	{
		Format:   "docx",
		Label:    "📄 下载Word报告",
		FileName: "轮胎制造业AI优化报告.docx",
		MIMEType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		Data:     []byte("模拟Word内容"),
	},
}

// Overview is the output page before any action.
type Overview struct {
	Notes                []string `json:"notes"`
	DefaultOptimizeInput string   `json:"default_optimize_input"`
	DefaultAPIInput      string   `json:"default_api_input"`
	ReportOptions        []string `json:"report_options"`
	InstructionTypes     []string `json:"instruction_types"`
}

// Optimization pairs the submitted text with the canned result.
type Optimization struct {
	Original  string `json:"original"`
	Optimized string `json:"optimized"`
}

// Section is one Markdown block of a generated report.
type Section struct {
	Option   string `json:"option"`
	Markdown string `json:"markdown"`
}

// Report is the assembled Markdown plus the export links.
type Report struct {
	Message   string     `json:"message"`
	Sections  []Section  `json:"sections"`
	Markdown  string     `json:"markdown"`
	Downloads []Download `json:"downloads"`
}

// APIResult is the answer of the text-optimisation API demo.
type APIResult struct {
	Message         string `json:"message"`
	InstructionType string `json:"instruction_type"`
	OptimizedText   string `json:"optimized_text"`
}
