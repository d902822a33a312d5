package app

// Module is one entry of the navigation sidebar.
type Module struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Modules lists the six pages in navigation order.
var Modules = []Module{
	{ID: "environment", Label: "🏁 准备阶段 - 模型加载与环境验证", Path: "/api/environment"},
	{ID: "dataset", Label: "📊 数据准备 - 轮胎制造业数据处理", Path: "/api/dataset"},
	{ID: "instruction", Label: "🔍 Instruction 类型判断", Path: "/api/instruction"},
	{ID: "finetune", Label: "⚙️ 模型微调 - Lora 参数配置与训练", Path: "/api/finetune"},
	{ID: "evaluation", Label: "✅ 验证评估 - 自动+人工评估", Path: "/api/evaluation"},
	{ID: "output", Label: "📝 成果输出 - 文本优化与报告生成", Path: "/api/output"},
}
