package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"tirewriter/backend/internal/features/finetune/domain"
	"tirewriter/backend/internal/pacing"
	"tirewriter/backend/internal/session"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newService() FinetuneService {
	return NewFinetuneService(pacing.Instant(), 2*time.Second, 50*time.Millisecond, domain.ParamsInput{})
}

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func TestTrainCounterEndsAt100(t *testing.T) {
	svc := newService()
	state := session.NewState()
	state.TrainingProgress = 42

	var inits []string
	var seen []int
	res, err := svc.Train(context.Background(), svc.Normalize(domain.ParamsInput{}), &state,
		func(msg string) { inits = append(inits, msg) },
		func(p domain.Progress) { seen = append(seen, p.Progress) },
	)
	require.NoError(t, err)

	assert.Equal(t, []string{domain.InitMessage}, inits)
	require.Len(t, seen, 101)
	for i, v := range seen {
		assert.Equal(t, i, v)
	}
	assert.Equal(t, 100, state.TrainingProgress)
	assert.Equal(t, "0.125", res.FinalTrainLoss)
	assert.Equal(t, "./outputs/chatglm3-6b-tire-lora", res.ModelPath)
}

func TestTrainResultIgnoresParams(t *testing.T) {
	svc := newService()
	state := session.NewState()

	a, err := svc.Train(context.Background(), svc.Normalize(domain.ParamsInput{R: intp(2)}), &state, nil, nil)
	require.NoError(t, err)
	b, err := svc.Train(context.Background(), svc.Normalize(domain.ParamsInput{R: intp(16), MaxSteps: intp(5000)}), &state, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, a.FinalValLoss, b.FinalValLoss)
	assert.Equal(t, 1000, b.TrainingSteps)
	assert.Equal(t, 2, a.Params.R)
	assert.Equal(t, 16, b.Params.R)
}

func TestTrainStopsOnCancel(t *testing.T) {
	svc := NewFinetuneService(pacing.NewScaled(1), 0, time.Millisecond, domain.ParamsInput{})
	ctx, cancel := context.WithCancel(context.Background())
	state := session.NewState()

	_, err := svc.Train(ctx, domain.Params{}, &state, nil, func(p domain.Progress) {
		if p.Progress == 10 {
			cancel()
		}
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 10, state.TrainingProgress)
}

func TestNormalizeDefaults(t *testing.T) {
	got := newService().Normalize(domain.ParamsInput{})
	assert.Equal(t, domain.Params{
		R: 8, Alpha: 16, Dropout: 0.1, BatchSize: 4, LearningRate: 0.0002,
		WarmupSteps: 100, MaxSteps: 1000, SaveSteps: 500,
	}, got)
}

func TestConfiguredDefaultsReplaceBuiltIns(t *testing.T) {
	svc := NewFinetuneService(pacing.Instant(), 0, 0, domain.ParamsInput{
		R:         intp(4),
		Dropout:   floatp(0.22),
		MaxSteps:  intp(9000),
		SaveSteps: intp(200),
	})

	got := svc.Normalize(domain.ParamsInput{})
	assert.Equal(t, domain.Params{
		R: 4, Alpha: 16, Dropout: 0.2, BatchSize: 4, LearningRate: 0.0002,
		WarmupSteps: 100, MaxSteps: 5000, SaveSteps: 200,
	}, got)
	assert.Equal(t, got, svc.Overview().Defaults)

	assert.Equal(t, 12, svc.Normalize(domain.ParamsInput{R: intp(12)}).R)
}

func TestNormalizeClampsAndSnaps(t *testing.T) {
	got := newService().Normalize(domain.ParamsInput{
		R:           intp(99),
		Alpha:       intp(1),
		Dropout:     floatp(0.33),
		BatchSize:   intp(0),
		WarmupSteps: intp(0),
		MaxSteps:    intp(6000),
		SaveSteps:   intp(50),
	})
	assert.Equal(t, 16, got.R)
	assert.Equal(t, 8, got.Alpha)
	assert.Equal(t, 0.35, got.Dropout)
	assert.Equal(t, 1, got.BatchSize)
	assert.Equal(t, 0, got.WarmupSteps)
	assert.Equal(t, 5000, got.MaxSteps)
	assert.Equal(t, 100, got.SaveSteps)
}

func TestNormalizeKeepsExplicitZeroDropout(t *testing.T) {
	got := newService().Normalize(domain.ParamsInput{Dropout: floatp(0), LearningRate: floatp(0.001)})
	assert.Equal(t, 0.0, got.Dropout)
	assert.Equal(t, 0.001, got.LearningRate)
}

func TestOverviewSchema(t *testing.T) {
	ov := newService().Overview()
	require.Len(t, ov.Schema, 8)
	assert.Equal(t, "r", ov.Schema[0].Name)
	assert.Equal(t, 8, ov.Defaults.R)
}
