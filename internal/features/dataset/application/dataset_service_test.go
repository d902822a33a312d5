package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tirewriter/backend/internal/features/dataset/domain"
	"tirewriter/backend/internal/features/dataset/infrastructure"
	"tirewriter/backend/internal/session"
)

func newService(t *testing.T) DatasetService {
	t.Helper()
	catalog, err := infrastructure.LoadCatalog()
	require.NoError(t, err)
	return NewDatasetService(catalog)
}

func TestSelectIsStableAcrossRepeats(t *testing.T) {
	svc := newService(t)
	state := session.NewState()

	for _, key := range []string{"案例1", "案例2", "案例3"} {
		first, err := svc.Select(&state, key)
		require.NoError(t, err)
		assert.Equal(t, key, state.CurrentCase)

		for i := 0; i < 3; i++ {
			again, err := svc.Select(&state, key)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	}
}

func TestSelectRendersBars(t *testing.T) {
	svc := newService(t)
	state := session.NewState()

	view, err := svc.Select(&state, "案例1")
	require.NoError(t, err)
	require.Len(t, view.Bars, 4)
	assert.Equal(t, "ROUGE-L: 0.785", view.Bars[0].Caption)
	assert.Equal(t, "BLEU: 0.692", view.Bars[1].Caption)
	assert.Equal(t, "语义相似度: 0.834", view.Bars[2].Caption)
	assert.Equal(t, "视角转换准确度: 0.912", view.Bars[3].Caption)
	assert.Equal(t, "工艺改进", view.Category)
}

func TestSelectUnknownLeavesStateAlone(t *testing.T) {
	svc := newService(t)
	state := session.NewState()
	state.CurrentCase = "案例2"

	_, err := svc.Select(&state, "案例7")
	assert.ErrorIs(t, err, domain.ErrCaseNotFound)
	assert.Equal(t, "案例2", state.CurrentCase)
}

func TestCurrentDefaultsToFirstCase(t *testing.T) {
	svc := newService(t)

	view, err := svc.Current(session.State{})
	require.NoError(t, err)
	assert.Equal(t, "案例1", view.Key)
}

func TestOverview(t *testing.T) {
	ov := newService(t).Overview()
	assert.Equal(t, []string{"案例1", "案例2", "案例3"}, ov.CaseKeys)
	assert.Equal(t, 8000, ov.TrainSize)
	assert.Equal(t, 2000, ov.ValidationSize)
	assert.Equal(t, 1000, ov.TestSize)
	assert.Len(t, ov.Notes, 4)
}
