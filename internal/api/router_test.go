package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tirewriter/backend/internal/app"
	"tirewriter/backend/internal/config"
	cfgdomain "tirewriter/backend/internal/features/config/domain"
	"tirewriter/backend/internal/features/output/domain"
	"tirewriter/backend/internal/session"
)

const testSession = "test-session"

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	router, _ := setupPacedRouter(t, 0, cfgdomain.DefaultAppConfig())
	return router
}

// setupPacedRouter builds a router whose actions really wait, scaled by
// pacing, and exposes the session store behind it.
func setupPacedRouter(t *testing.T, pacing float64, appConfig *cfgdomain.AppConfig) (*gin.Engine, session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Environment:   "test",
		AppConfigPath: filepath.Join(t.TempDir(), "app_config.json"),
		PacingFactor:  pacing,
		SessionStore:  "memory",
		SessionTTL:    time.Hour,
		SessionSecret: "test-secret",
	}
	store := session.NewMemoryStore()
	appConfigService := config.NewAppConfigService(cfg.AppConfigPath)
	a, err := app.Build(cfg, appConfigService, appConfig, store, "test")
	require.NoError(t, err)
	return SetupRouter(a), store
}

// serve is do without assertions, for use off the test goroutine.
func serve(router http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("X-Session-ID", testSession)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// slowTraining makes a run take about a second and every other action instant.
func slowTraining() *cfgdomain.AppConfig {
	appConfig := cfgdomain.DefaultAppConfig()
	appConfig.Delays = cfgdomain.Delays{TrainingStepMS: 10}
	return appConfig
}

// progressOf reads the stored training counter, or -1 when the read fails.
func progressOf(router http.Handler) int {
	w := serve(router, http.MethodGet, "/api/finetune/progress")
	var body struct {
		TrainingProgress int `json:"training_progress"`
	}
	if w.Code != http.StatusOK || json.Unmarshal(w.Body.Bytes(), &body) != nil {
		return -1
	}
	return body.TrainingProgress
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Session-ID", testSession)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type sseEvent struct {
	Event string
	Data  string
}

func parseSSE(t *testing.T, body string) []sseEvent {
	t.Helper()
	var events []sseEvent
	var cur sseEvent
	scanner := bufio.NewScanner(strings.NewReader(body))
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event:"):
			cur.Event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			cur.Data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		case line == "" && cur.Event != "":
			events = append(events, cur)
			cur = sseEvent{}
		}
	}
	require.NoError(t, scanner.Err())
	return events
}

func TestPingAndHealth(t *testing.T) {
	router := setupTestRouter(t)

	w := do(t, router, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", decode(t, w)["message"])

	w = do(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "memory", body["session_store"])
}

func TestIndexListsSixModules(t *testing.T) {
	w := do(t, setupTestRouter(t), http.MethodGet, "/api", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "轮胎制造业技术写作AI大模型Demo", body["title"])
	assert.Len(t, body["modules"], 6)
}

func TestEnvironmentModelLoading(t *testing.T) {
	router := setupTestRouter(t)

	w := do(t, router, http.MethodGet, "/api/environment", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["model_loaded"])
	assert.Equal(t, "请点击左侧'加载模型'按钮", body["notice"])

	for i := 0; i < 2; i++ {
		w = do(t, router, http.MethodPost, "/api/environment/model/load", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, decode(t, w)["model_loaded"])
	}

	w = do(t, router, http.MethodGet, "/api/environment", nil)
	body = decode(t, w)
	assert.Equal(t, true, body["model_loaded"])
	assert.Equal(t, "已加载", body["status"])
	assert.Len(t, body["indicators"], 3)
}

func TestEnvironmentCheck(t *testing.T) {
	w := do(t, setupTestRouter(t), http.MethodPost, "/api/environment/check", nil)
	require.Equal(t, http.StatusOK, w.Code)

	checks := decode(t, w)["checks"].([]interface{})
	require.Len(t, checks, 6)
	assert.Equal(t, "✅ CUDA 12.1", checks[1].(map[string]interface{})["label"])
}

func TestDatasetSelection(t *testing.T) {
	router := setupTestRouter(t)

	w := do(t, router, http.MethodGet, "/api/dataset/current", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "案例1", decode(t, w)["key"])

	first := do(t, router, http.MethodPost, "/api/dataset/select/2", nil)
	require.Equal(t, http.StatusOK, first.Code)
	second := do(t, router, http.MethodPost, "/api/dataset/select/2", nil)
	assert.Equal(t, first.Body.String(), second.Body.String())

	body := decode(t, first)
	assert.Equal(t, "案例2", body["key"])
	assert.Equal(t, "故障排除", body["category"])

	w = do(t, router, http.MethodGet, "/api/dataset/current", nil)
	assert.Equal(t, "案例2", decode(t, w)["key"])

	w = do(t, router, http.MethodPost, "/api/dataset/select/9", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, router, http.MethodGet, "/api/dataset/cases", nil)
	assert.Len(t, decode(t, w)["cases"], 3)
}

func TestInstructionClassifyIgnoresText(t *testing.T) {
	router := setupTestRouter(t)

	a := do(t, router, http.MethodPost, "/api/instruction/classify", map[string]string{"text": "甲"})
	b := do(t, router, http.MethodPost, "/api/instruction/classify", map[string]string{"text": "乙"})
	c := do(t, router, http.MethodPost, "/api/instruction/classify", nil)
	require.Equal(t, http.StatusOK, a.Code)
	assert.Equal(t, a.Body.String(), b.Body.String())
	assert.Equal(t, a.Body.String(), c.Body.String())
	assert.Equal(t, "分类型Instruction", decode(t, a)["predicted"])
}

func TestFinetuneTrainStream(t *testing.T) {
	router := setupTestRouter(t)

	w := do(t, router, http.MethodPost, "/api/finetune/train", map[string]any{"r": 4})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/event-stream")

	events := parseSSE(t, w.Body.String())
	require.Len(t, events, 1+101+1)
	assert.Equal(t, "init", events[0].Event)

	var last struct {
		Progress int `json:"progress"`
	}
	require.NoError(t, json.Unmarshal([]byte(events[101].Data), &last))
	assert.Equal(t, "progress", events[101].Event)
	assert.Equal(t, 100, last.Progress)

	result := events[102]
	assert.Equal(t, "result", result.Event)
	var res map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(result.Data), &res))
	assert.Equal(t, "0.178", res["final_val_loss"])
	assert.Equal(t, float64(4), res["params"].(map[string]interface{})["r"])

	w = do(t, router, http.MethodGet, "/api/finetune/progress", nil)
	assert.Equal(t, float64(100), decode(t, w)["training_progress"])
}

func TestFinetuneTrainJSON(t *testing.T) {
	router := setupTestRouter(t)

	w := do(t, router, http.MethodPost, "/api/finetune/train?stream=false", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "训练完成!", body["message"])
	assert.Equal(t, float64(8), body["params"].(map[string]interface{})["r"])

	w = do(t, router, http.MethodPost, "/api/finetune/train?stream=false", "not an object")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEvaluationViews(t *testing.T) {
	router := setupTestRouter(t)

	w := do(t, router, http.MethodGet, "/api/evaluation", nil)
	assert.Len(t, decode(t, w)["kinds"], 3)

	w = do(t, router, http.MethodGet, "/api/evaluation/combined", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "A", decode(t, w)["grade"])

	w = do(t, router, http.MethodGet, "/api/evaluation/nope", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOutputOptimizeIsConstant(t *testing.T) {
	router := setupTestRouter(t)

	w := do(t, router, http.MethodGet, "/api/output/optimization", nil)
	assert.Nil(t, decode(t, w)["optimization_result"])

	for _, text := range []string{"a", "b", domain.DefaultOptimizeInput} {
		w = do(t, router, http.MethodPost, "/api/output/optimize", map[string]string{"text": text})
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, domain.CannedOptimization, body["optimized"])
		assert.Equal(t, text, body["original"])
	}

	w = do(t, router, http.MethodGet, "/api/output/optimization", nil)
	assert.Equal(t, domain.CannedOptimization, decode(t, w)["optimization_result"])
}

func TestOutputReportAndDownloads(t *testing.T) {
	router := setupTestRouter(t)

	w := do(t, router, http.MethodPost, "/api/output/report", map[string]any{"options": []string{"专家评价", "优化前后对比"}})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "报告生成成功!", body["message"])
	assert.Len(t, body["sections"], 2)
	assert.True(t, strings.HasPrefix(body["markdown"].(string), "### 专家评价"))

	downloads := body["downloads"].([]interface{})
	require.Len(t, downloads, 2)
	url := downloads[0].(map[string]interface{})["url"].(string)
	assert.Equal(t, "/api/output/report/download/pdf", url)

	w = do(t, router, http.MethodGet, url, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Equal(t, "模拟PDF内容", w.Body.String())

	w = do(t, router, http.MethodGet, "/api/output/report/download/docx", nil)
	assert.Equal(t, "模拟Word内容", w.Body.String())

	w = do(t, router, http.MethodGet, "/api/output/report/download/txt", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTextOptimizationEndpointIsConstant(t *testing.T) {
	router := setupTestRouter(t)

	var first string
	for _, it := range []string{"分类型", "开放型", ""} {
		w := do(t, router, http.MethodPost, "/api/v1/text-optimization", map[string]string{"text": it + "文本", "instruction_type": it})
		require.Equal(t, http.StatusOK, w.Code)
		got := decode(t, w)["optimized_text"].(string)
		if first == "" {
			first = got
		}
		assert.Equal(t, first, got)
	}
	assert.Equal(t, domain.CannedOptimization, first)
}

func TestChatCompletionsWithOpenAIClient(t *testing.T) {
	srv := httptest.NewServer(setupTestRouter(t))
	t.Cleanup(srv.Close)

	cfg := openai.DefaultConfig("unused")
	cfg.BaseURL = srv.URL + "/v1"
	client := openai.NewClientWithConfig(cfg)

	resp, err := client.CreateChatCompletion(context.Background(), openai.ChatCompletionRequest{
		Model: "chatglm3-6b-tire-lora",
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: "成型机压力传感器异常"},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Choices, 1)
	assert.Equal(t, domain.CannedOptimization, resp.Choices[0].Message.Content)
	assert.Equal(t, "chatglm3-6b-tire-lora", resp.Model)
}

func TestChatCompletionsRejectsStreaming(t *testing.T) {
	w := do(t, setupTestRouter(t), http.MethodPost, "/v1/chat/completions", map[string]any{
		"model":    "x",
		"stream":   true,
		"messages": []map[string]string{{"role": "user", "content": "hi"}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConfigRoutes(t *testing.T) {
	router := setupTestRouter(t)

	w := do(t, router, http.MethodGet, "/api/config/app", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, decode(t, w)["delays"])

	saved := cfgdomain.DefaultAppConfig()
	saved.Title = "保存测试"
	w = do(t, router, http.MethodPost, "/api/config/app", saved)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodGet, "/api/config/app", nil)
	assert.Equal(t, "保存测试", decode(t, w)["title"])

	w = do(t, router, http.MethodGet, "/api/config/runtime", nil)
	body := decode(t, w)
	assert.Equal(t, "test", body["environment"])
	assert.Equal(t, "memory", body["session_store"])
}

func TestSessionsAreIsolated(t *testing.T) {
	router := setupTestRouter(t)
	require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, "/api/environment/model/load", nil).Code)

	req := httptest.NewRequest(http.MethodGet, "/api/environment", nil)
	req.Header.Set("X-Session-ID", "someone-else")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, false, decode(t, w)["model_loaded"])
}

func TestActionsDuringTrainingSurvive(t *testing.T) {
	for _, stream := range []string{"true", "false"} {
		t.Run("stream="+stream, func(t *testing.T) {
			router, _ := setupPacedRouter(t, 1, slowTraining())

			done := make(chan *httptest.ResponseRecorder, 1)
			go func() {
				done <- serve(router, http.MethodPost, "/api/finetune/train?stream="+stream)
			}()
			require.Eventually(t, func() bool {
				p := progressOf(router)
				return p > 0 && p < 50
			}, 5*time.Second, 2*time.Millisecond)

			require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, "/api/environment/model/load", nil).Code)
			require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, "/api/dataset/select/3", nil).Code)
			require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, "/api/output/optimize", nil).Code)

			w := <-done
			require.Equal(t, http.StatusOK, w.Code)

			assert.Equal(t, true, decode(t, do(t, router, http.MethodGet, "/api/environment", nil))["model_loaded"])
			assert.Equal(t, "案例3", decode(t, do(t, router, http.MethodGet, "/api/dataset/current", nil))["key"])
			assert.Equal(t, domain.CannedOptimization,
				decode(t, do(t, router, http.MethodGet, "/api/output/optimization", nil))["optimization_result"])
			assert.Equal(t, 100, progressOf(router))
		})
	}
}

func TestProgressIsVisibleDuringTraining(t *testing.T) {
	router, store := setupPacedRouter(t, 1, slowTraining())
	prior := session.NewState()
	prior.TrainingProgress = 100
	require.NoError(t, store.Save(context.Background(), testSession, prior))

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		done <- serve(router, http.MethodPost, "/api/finetune/train")
	}()

	// A run that only saved at the end would show 100 until it finished.
	require.Eventually(t, func() bool {
		p := progressOf(router)
		return p > 0 && p < 100
	}, 5*time.Second, 2*time.Millisecond)

	w := <-done
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 100, progressOf(router))
}

func TestConfigPartialSaveKeepsOtherFields(t *testing.T) {
	router := setupTestRouter(t)

	w := do(t, router, http.MethodPost, "/api/config/app", map[string]any{
		"title":    "只改标题",
		"finetune": map[string]any{"r": 4},
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, do(t, router, http.MethodGet, "/api/config/app", nil))
	defaults := cfgdomain.DefaultAppConfig()
	assert.Equal(t, "只改标题", body["title"])
	assert.Equal(t, defaults.Subtitle, body["subtitle"])

	delays := body["delays"].(map[string]interface{})
	assert.Equal(t, float64(defaults.Delays.ModelLoadMS), delays["model_load_ms"])
	assert.Equal(t, float64(defaults.Delays.TrainingStepMS), delays["training_step_ms"])

	finetune := body["finetune"].(map[string]interface{})
	assert.Equal(t, float64(4), finetune["r"])
	assert.Equal(t, float64(16), finetune["alpha"])
}

func TestFinetuneDefaultsFromAppConfig(t *testing.T) {
	appConfig := cfgdomain.DefaultAppConfig()
	appConfig.Finetune.R = 12
	appConfig.Finetune.MaxSteps = 2000
	router, _ := setupPacedRouter(t, 0, appConfig)

	w := do(t, router, http.MethodGet, "/api/finetune", nil)
	require.Equal(t, http.StatusOK, w.Code)
	defaults := decode(t, w)["defaults"].(map[string]interface{})
	assert.Equal(t, float64(12), defaults["r"])
	assert.Equal(t, float64(2000), defaults["max_steps"])

	w = do(t, router, http.MethodPost, "/api/finetune/train?stream=false", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(12), decode(t, w)["params"].(map[string]interface{})["r"])
}
