package domain

// Model status labels.
const (
	StatusLoaded    = "已加载"
	StatusNotLoaded = "未加载"
)

// LoadModelHint is the informational notice shown until the model is loaded.
const LoadModelHint = "请点击左侧'加载模型'按钮"

// Resource is one line of the system resource panel.
type Resource struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Indicator is a labelled progress bar of the performance panel.
type Indicator struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Text  string  `json:"text"`
}

// Overview is everything the environment page shows for a given session.
type Overview struct {
	Architecture []string    `json:"architecture"`
	Resources    []Resource  `json:"resources"`
	ModelInfo    []Resource  `json:"model_info"`
	ModelLoaded  bool        `json:"model_loaded"`
	Status       string      `json:"status"`
	Notice       string      `json:"notice,omitempty"`
	Indicators   []Indicator `json:"indicators,omitempty"`
}

// Check is one passed environment check.
type Check struct {
	Component string `json:"component"`
	Version   string `json:"version"`
	Label     string `json:"label"`
}

// LoadResult reports the model load action.
type LoadResult struct {
	ModelLoaded bool   `json:"model_loaded"`
	Message     string `json:"message"`
}

var Architecture = []string{
	"后台模型：ChatGLM3-6B（技术增强版）- 中文支持友好、显存占用低",
	"开发框架：Streamlit - 轻量级Python Web框架，离线运行无依赖",
	"部署方式：离线桌面版 - 无需服务器，本地安装Python环境即可启动",
	"数据来源：轮胎制造业开源技术数据",
}

var Resources = []Resource{
	{Name: "GPU", Value: "NVIDIA RTX 4090"},
	{Name: "显存", Value: "24GB"},
	{Name: "内存", Value: "32GB"},
	{Name: "存储", Value: "1TB SSD"},
}

var ModelInfo = []Resource{
	{Name: "模型版本", Value: "ChatGLM3-6B"},
	{Name: "模型大小", Value: "约10GB"},
	{Name: "上下文长度", Value: "8K tokens"},
	{Name: "支持语言", Value: "中文/英文"},
	{Name: "量化方式", Value: "INT4"},
}

var Indicators = []Indicator{
	{Label: "响应速度", Value: 0.9, Text: "响应速度: 0.9 tokens/s"},
	{Label: "处理精度", Value: 0.85, Text: "处理精度: 85%"},
	{Label: "语言流畅度", Value: 0.92, Text: "语言流畅度: 92%"},
}

var Checks = []Check{
	{Component: "Python", Version: "3.9+"},
	{Component: "CUDA", Version: "12.1"},
	{Component: "PyTorch", Version: "2.1.0"},
	{Component: "Transformers", Version: "4.35.2"},
	{Component: "PEFT", Version: "0.7.1"},
	{Component: "Streamlit", Version: "1.28.0"},
}

const ModelLoadedMessage = "模型加载成功!"
