package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tirewriter/backend/internal/app"
	envdomain "tirewriter/backend/internal/features/environment/domain"
	finetunedomain "tirewriter/backend/internal/features/finetune/domain"
	outputdomain "tirewriter/backend/internal/features/output/domain"
)

const sidebarWidth = 22

// View implements tea.Model.
func (m Model) View() string {
	header := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render(m.app.AppConfig.Title),
		m.styles.Subtitle.Render(m.app.AppConfig.Subtitle),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.sidebar(),
		m.styles.Content.Width(m.contentWidth()).Render(m.page()),
	)

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, m.footer())
}

func (m Model) sidebar() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Label.Render("功能模块"))
	sb.WriteString("\n\n")
	for i, mod := range app.Modules {
		line := fmt.Sprintf("%d %s", i+1, mod.Label)
		if i == m.active {
			sb.WriteString(m.styles.ActiveItem.Render("▸ " + line))
		} else {
			sb.WriteString(m.styles.Item.Render("  " + line))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	if m.state.ModelLoaded {
		sb.WriteString(m.styles.Success.Render("模型: " + envdomain.StatusLoaded))
	} else {
		sb.WriteString(m.styles.Warning.Render("模型: " + envdomain.StatusNotLoaded))
	}
	return m.styles.Sidebar.Width(sidebarWidth).Render(sb.String())
}

func (m Model) footer() string {
	var lines []string
	switch {
	case m.busy:
		lines = append(lines, m.spinner.View()+" "+m.busyText)
	case m.errText != "":
		lines = append(lines, m.styles.Error.Render("错误: "+m.errText))
	case m.status != "":
		lines = append(lines, m.styles.Success.Render(m.status))
	}
	lines = append(lines, m.styles.Help.Render("↑/↓ 1-6 切换模块 • "+pageHelp[m.active]+" • q 退出"))
	return strings.Join(lines, "\n")
}

var pageHelp = map[int]string{
	ModuleEnvironment: "enter/c 检查环境 • l 加载模型",
	ModuleDataset:     "enter/tab 下一个案例",
	ModuleInstruction: "enter 分类",
	ModuleFinetune:    "tab 选择参数 • +/- 调整 • enter 开始训练",
	ModuleEvaluation:  "enter/tab 切换评估方式",
	ModuleOutput:      "enter 优化 • tab 选择 • space 勾选 • g 生成报告 • a 调用API",
}

func (m Model) page() string {
	switch m.active {
	case ModuleEnvironment:
		return m.environmentPage()
	case ModuleDataset:
		return m.datasetPage()
	case ModuleInstruction:
		return m.instructionPage()
	case ModuleFinetune:
		return m.finetunePage()
	case ModuleEvaluation:
		return m.evaluationPage()
	default:
		return m.outputPage()
	}
}

func (m Model) heading(i int) string {
	return m.styles.Header.Render(app.Modules[i].Label)
}

func (m Model) bar(label string, value float64, caption string) string {
	return fmt.Sprintf("%s\n%s %s", label, m.progress.ViewAs(value), m.styles.Muted.Render(caption))
}

func (m Model) markdown(md string) string {
	if m.renderer == nil {
		return md
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

func bullets(items []string) string {
	var sb strings.Builder
	for _, it := range items {
		sb.WriteString("• " + it + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m Model) environmentPage() string {
	ov := m.app.Environment.Overview(m.state)

	var sb strings.Builder
	sb.WriteString(m.heading(ModuleEnvironment))
	sb.WriteString("\n")
	sb.WriteString(bullets(ov.Architecture))
	sb.WriteString("\n\n")

	sb.WriteString(m.styles.Label.Render("系统资源"))
	sb.WriteString("\n")
	for _, r := range ov.Resources {
		sb.WriteString(fmt.Sprintf("%s: %s\n", r.Name, r.Value))
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Label.Render("模型状态: "))
	if ov.ModelLoaded {
		sb.WriteString(m.styles.Success.Render(ov.Status))
		sb.WriteString("\n\n")
		for _, ind := range ov.Indicators {
			sb.WriteString(m.bar(ind.Label, ind.Value, ind.Text))
			sb.WriteString("\n")
		}
	} else {
		sb.WriteString(m.styles.Warning.Render(ov.Status))
		sb.WriteString("\n")
		sb.WriteString(m.styles.Muted.Render(ov.Notice))
		sb.WriteString("\n")
	}

	if len(m.checks) > 0 {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Label.Render("环境检查"))
		sb.WriteString("\n")
		for _, c := range m.checks {
			sb.WriteString(c.Label + "\n")
		}
	}
	return sb.String()
}

func (m Model) datasetPage() string {
	ov := m.app.Dataset.Overview()

	var sb strings.Builder
	sb.WriteString(m.heading(ModuleDataset))
	sb.WriteString("\n")
	sb.WriteString(bullets(ov.Notes))
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("训练集 %d • 验证集 %d • 测试集 %d",
		ov.TrainSize, ov.ValidationSize, ov.TestSize)))
	sb.WriteString("\n\n")

	cv := m.caseView
	if cv == nil {
		return sb.String()
	}
	sb.WriteString(m.styles.Label.Render(fmt.Sprintf("%s: %s", cv.Key, cv.Title)))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("类型: %s • 类别: %s", cv.InstructionType, cv.Category)))
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Label.Render("原始文档"))
	sb.WriteString("\n" + cv.OriginalText + "\n\n")
	sb.WriteString(m.styles.Label.Render("优化后文档"))
	sb.WriteString("\n" + cv.OptimizedText + "\n\n")
	for _, b := range cv.Bars {
		sb.WriteString(m.bar(b.Label, b.Value, b.Caption))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) instructionPage() string {
	ov := m.app.Instruction.Overview()

	var sb strings.Builder
	sb.WriteString(m.heading(ModuleInstruction))
	sb.WriteString("\n")
	sb.WriteString(bullets(ov.Notes))
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Label.Render("输入文本"))
	sb.WriteString("\n" + ov.DefaultInput + "\n")

	c := m.classification
	if c == nil {
		return sb.String()
	}
	sb.WriteString("\n")
	for _, p := range c.Probabilities {
		sb.WriteString(m.bar(p.Label, p.Value, p.Caption))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.styles.Success.Render("预测结果: " + c.Predicted))
	sb.WriteString("\n" + c.Explanation + "\n\n")
	sb.WriteString(m.styles.Label.Render(c.Template.Description))
	sb.WriteString("\n输入: " + c.Template.Input)
	sb.WriteString("\n输出: " + c.Template.Output + "\n")
	return sb.String()
}

func (m Model) finetunePage() string {
	var sb strings.Builder
	sb.WriteString(m.heading(ModuleFinetune))
	sb.WriteString("\n")
	sb.WriteString(bullets(finetunedomain.Notes))
	sb.WriteString("\n\n")

	for i, p := range finetunedomain.Schema {
		line := fmt.Sprintf("%-12s %s", p.Label, formatParam(p, paramValue(m.params, p.Name)))
		if p.Kind == finetunedomain.KindSlider {
			line += m.styles.Muted.Render(fmt.Sprintf("  [%g, %g]", p.Min, p.Max))
		}
		if i == m.paramFocus {
			sb.WriteString(m.styles.Focused.Render("▸ " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}

	if m.busy || m.trainProgress > 0 || m.trainResult != nil {
		sb.WriteString("\n")
		sb.WriteString(m.progress.ViewAs(float64(m.trainProgress) / finetunedomain.ProgressMax))
		sb.WriteString(fmt.Sprintf(" 训练进度: %d%%\n", m.trainProgress))
	}

	if r := m.trainResult; r != nil {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Success.Render(r.Message))
		sb.WriteString(fmt.Sprintf("\n最终训练损失: %s • 最终验证损失: %s\n", r.FinalTrainLoss, r.FinalValLoss))
		sb.WriteString(fmt.Sprintf("训练步数: %d • 保存检查点: %d\n", r.TrainingSteps, r.Checkpoints))
		sb.WriteString(m.styles.Success.Render(r.SavedMessage))
		sb.WriteString(fmt.Sprintf("\n模型路径: %s • 模型大小: %s • 微调参数: %s\n", r.ModelPath, r.ModelSize, r.TunedParameters))
	}
	return sb.String()
}

func formatParam(p finetunedomain.Parameter, v float64) string {
	switch p.Name {
	case "dropout":
		return fmt.Sprintf("%.2f", v)
	case "learning_rate":
		return fmt.Sprintf("%.6f", v)
	}
	return fmt.Sprintf("%d", int(v))
}

func (m Model) evaluationPage() string {
	ov := m.app.Evaluation.Overview()

	var sb strings.Builder
	sb.WriteString(m.heading(ModuleEvaluation))
	sb.WriteString("\n")
	sb.WriteString(bullets(ov.Notes))
	sb.WriteString("\n\n")

	var kinds []string
	for i, k := range ov.Kinds {
		if i == m.evalKind {
			kinds = append(kinds, m.styles.Focused.Render("["+k.Label+"]"))
		} else {
			kinds = append(kinds, m.styles.Muted.Render(k.Label))
		}
	}
	sb.WriteString(strings.Join(kinds, "  "))
	sb.WriteString("\n\n")

	r := m.evalReport
	if r == nil {
		return sb.String()
	}
	sb.WriteString(m.styles.Label.Render(r.Title))
	sb.WriteString("\n")
	for _, s := range r.Scores {
		sb.WriteString(m.bar(s.Label, s.Value, s.Caption))
		sb.WriteString("\n")
	}
	for _, c := range r.Curves {
		if len(c.Points) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s: %.3f → %.3f (%d 轮)\n", c.Name, c.Points[0], c.Points[len(c.Points)-1], len(c.Points)))
	}
	if r.Summary != "" {
		sb.WriteString("\n" + r.Summary + "\n")
	}
	if r.Grade != "" {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Success.Render("评估等级: " + r.Grade))
		sb.WriteString("\n")
	}
	for _, b := range r.Bars {
		sb.WriteString(m.bar(b.Label, b.Value, fmt.Sprintf("%.2f", b.Value)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) outputPage() string {
	var sb strings.Builder
	sb.WriteString(m.heading(ModuleOutput))
	sb.WriteString("\n")
	sb.WriteString(bullets(outputdomain.Notes))
	sb.WriteString("\n\n")

	sb.WriteString(m.styles.Label.Render("待优化文本"))
	sb.WriteString("\n" + outputdomain.DefaultOptimizeInput + "\n")
	if o := m.optimization; o != nil {
		sb.WriteString(m.styles.Label.Render("优化结果"))
		sb.WriteString("\n" + o.Optimized + "\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Label.Render("选择报告内容"))
	sb.WriteString("\n")
	for i, opt := range outputdomain.ReportOptions {
		box := "[ ]"
		if m.options[opt] {
			box = "[x]"
		}
		line := box + " " + opt
		if i == m.optionFocus {
			sb.WriteString(m.styles.Focused.Render("▸ " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}

	if r := m.report; r != nil {
		sb.WriteString("\n")
		sb.WriteString(m.markdown(r.Markdown))
		sb.WriteString("\n")
		var files []string
		for _, d := range r.Downloads {
			files = append(files, fmt.Sprintf("%s (%s)", d.Label, d.URL))
		}
		sb.WriteString(m.styles.Muted.Render("下载: " + strings.Join(files, " • ")))
		sb.WriteString("\n")
	}

	if a := m.apiResult; a != nil {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Label.Render("API调用 (" + a.InstructionType + ")"))
		sb.WriteString("\n" + a.OptimizedText + "\n")
	}
	return sb.String()
}
