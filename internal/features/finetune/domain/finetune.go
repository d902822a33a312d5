package domain

// Notes describe the LoRA setup shown above the parameter panel.
var Notes = []string{
	"LoRA（Low-Rank Adaptation）是一种参数高效的微调方法，仅需更新少量参数",
	"微调参数：r=8, alpha=16, dropout=0.1, target_modules=all linear layers",
	"训练设置：batch_size=4, learning_rate=2e-4, warmup_steps=100, max_steps=1000",
	"优化器：AdamW，调度器：CosineAnnealingLR",
}

// Parameter kinds.
const (
	KindSlider = "slider"
	KindNumber = "number"
)

// Parameter describes one input of the configuration panel.
type Parameter struct {
	Name    string  `json:"name"`
	Label   string  `json:"label"`
	Kind    string  `json:"kind"`
	Min     float64 `json:"min,omitempty"`
	Max     float64 `json:"max,omitempty"`
	Step    float64 `json:"step"`
	Default float64 `json:"default"`
}

// Schema lists the LoRA and training inputs in display order.
var Schema = []Parameter{
	{Name: "r", Label: "秩大小 (r)", Kind: KindSlider, Min: 1, Max: 16, Step: 1, Default: 8},
	{Name: "alpha", Label: "Alpha值", Kind: KindSlider, Min: 8, Max: 64, Step: 1, Default: 16},
	{Name: "dropout", Label: "Dropout", Kind: KindSlider, Min: 0, Max: 0.5, Step: 0.05, Default: 0.1},
	{Name: "batch_size", Label: "批次大小", Kind: KindSlider, Min: 1, Max: 16, Step: 1, Default: 4},
	{Name: "learning_rate", Label: "学习率", Kind: KindNumber, Step: 0.000001, Default: 0.0002},
	{Name: "warmup_steps", Label: "预热步数", Kind: KindSlider, Min: 0, Max: 500, Step: 1, Default: 100},
	{Name: "max_steps", Label: "最大步数", Kind: KindSlider, Min: 100, Max: 5000, Step: 1, Default: 1000},
	{Name: "save_steps", Label: "保存间隔", Kind: KindSlider, Min: 100, Max: 1000, Step: 1, Default: 500},
}

// Params is a complete, in-range parameter set. It is echoed back to the
// caller and drives nothing.
type Params struct {
	R            int     `json:"r"`
	Alpha        int     `json:"alpha"`
	Dropout      float64 `json:"dropout"`
	BatchSize    int     `json:"batch_size"`
	LearningRate float64 `json:"learning_rate"`
	WarmupSteps  int     `json:"warmup_steps"`
	MaxSteps     int     `json:"max_steps"`
	SaveSteps    int     `json:"save_steps"`
}

// ParamsInput is what a caller submits; absent fields take their defaults.
type ParamsInput struct {
	R            *int     `json:"r,omitempty"`
	Alpha        *int     `json:"alpha,omitempty"`
	Dropout      *float64 `json:"dropout,omitempty"`
	BatchSize    *int     `json:"batch_size,omitempty"`
	LearningRate *float64 `json:"learning_rate,omitempty"`
	WarmupSteps  *int     `json:"warmup_steps,omitempty"`
	MaxSteps     *int     `json:"max_steps,omitempty"`
	SaveSteps    *int     `json:"save_steps,omitempty"`
}

// Overview is the fine-tuning page before training.
type Overview struct {
	Notes    []string    `json:"notes"`
	Schema   []Parameter `json:"schema"`
	Defaults Params      `json:"defaults"`
}

// Result is the fixed outcome of a simulated training run.
type Result struct {
	Message         string `json:"message"`
	Params          Params `json:"params"`
	FinalTrainLoss  string `json:"final_train_loss"`
	FinalValLoss    string `json:"final_val_loss"`
	TrainingSteps   int    `json:"training_steps"`
	Checkpoints     int    `json:"checkpoints"`
	SavedMessage    string `json:"saved_message"`
	ModelPath       string `json:"model_path"`
	ModelSize       string `json:"model_size"`
	TunedParameters string `json:"tuned_parameters"`
}

// Progress is one tick of the training counter.
type Progress struct {
	Progress int    `json:"progress"`
	Text     string `json:"text"`
}

const (
	InitMessage     = "训练环境初始化完成!"
	FinishedMessage = "训练完成!"
	ProgressMax     = 100
)

// FixedResult holds the canned numbers reported after every run.
var FixedResult = Result{
	Message:         FinishedMessage,
	FinalTrainLoss:  "0.125",
	FinalValLoss:    "0.178",
	TrainingSteps:   1000,
	Checkpoints:     2,
	SavedMessage:    "模型保存成功!",
	ModelPath:       "./outputs/chatglm3-6b-tire-lora",
	ModelSize:       "约500MB",
	TunedParameters: "1.2M",
}
