package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fadilmartias/skillsnap/internal/dto"
	"github.com/fadilmartias/skillsnap/internal/model"
	"github.com/fadilmartias/skillsnap/internal/normalizer"
	"github.com/fadilmartias/skillsnap/internal/repository"
	"github.com/fadilmartias/skillsnap/internal/roadmap"
	"github.com/fadilmartias/skillsnap/internal/service"
	"github.com/fadilmartias/skillsnap/internal/util"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func analyzeRequest() dto.AnalyzeRequest {
	return dto.AnalyzeRequest{
		ResumeText:     resumeText,
		JDText:         jdText,
		ResumeFileName: "jane.pdf",
		JDFileName:     "backend.pdf",
	}
}

func newAnalysisUsecase(t *testing.T, llm *fakeLLM) (*AnalysisUsecase, *memoryStore, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	store := newMemoryStore()
	uc := NewAnalysisUsecase(repository.NewAnalysisRepository(db), llm, &fakeEmbedder{err: errBoom}, store, nil)
	return uc, store, db
}

func TestAnalysisUsecase_Analyze(t *testing.T) {
	llm := &fakeLLM{response: "```json\n" + llmResponse + "\n```"}
	uc, store, db := newAnalysisUsecase(t, llm)
	user := createUser(t, db, "jane@example.com")
	ctx := context.Background()

	res, err := uc.Analyze(ctx, user.ID, analyzeRequest())
	require.NoError(t, err)
	a := res.Analysis

	assert.Equal(t, "Backend Engineer", a.JobRole)
	assert.Equal(t, model.ExperienceMid, a.ExperienceLevel)
	assert.Equal(t, "jane.pdf", a.FileName)
	assert.Equal(t, 58.0, a.MatchPercent)
	assert.Nil(t, a.JobDescriptionEmbedding, "embedding failure is not fatal")
	assert.Contains(t, llm.prompts[0], "Kafka experience")
	assert.Equal(t, 2, store.len())
	assert.True(t, strings.HasPrefix(a.ResumeStorageKey, "resumes/"+user.ID.String()+"/"))
	assert.True(t, strings.HasSuffix(a.JobDescriptionStorageKey, "-backend.txt"))

	require.Len(t, a.Steps, 3)
	assert.Equal(t, model.RoadmapSummary{TotalSteps: 3, StepsNotStarted: 3}, a.OverallProgress)

	stored, err := uc.Get(ctx, user.ID, a.ID)
	require.NoError(t, err)
	require.Len(t, stored.Steps, 3)
	for i, step := range stored.Steps {
		assert.Equal(t, i+1, step.StepNumber)
		assert.Equal(t, a.Steps[i].ID, step.ID)
	}
	assert.Equal(t, []string{"Go", "PostgreSQL"}, []string(stored.SkillsFound))
	assert.Equal(t, jdText, stored.JobDescription)
}

func TestAnalysisUsecase_AnalyzeRejectsInput(t *testing.T) {
	llm := &fakeLLM{response: llmResponse}
	uc, store, db := newAnalysisUsecase(t, llm)
	user := createUser(t, db, "jane@example.com")

	req := analyzeRequest()
	req.JDText = "too short"
	_, err := uc.Analyze(context.Background(), user.ID, req)

	require.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, util.ErrTextTooShort)
	var inputErr *InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, "jdText", inputErr.Field)
	assert.Empty(t, llm.prompts)
	assert.Zero(t, store.len())
}

func TestAnalysisUsecase_AnalyzeFailures(t *testing.T) {
	tests := []struct {
		name  string
		llm   *fakeLLM
		check func(t *testing.T, err error)
	}{
		{
			name: "provider failure",
			llm:  &fakeLLM{err: &service.HTTPStatusError{StatusCode: 429, Body: "slow down"}},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, service.ErrAIUnavailable)
				var aiErr *service.AIError
				require.True(t, errors.As(err, &aiErr))
				assert.Equal(t, service.ReasonQuota, aiErr.Reason)
			},
		},
		{
			name: "incomplete answer",
			llm:  &fakeLLM{response: `{"extractedJobTitle": "Backend Engineer"}`},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrAIMalformed)
				assert.ErrorIs(t, err, normalizer.ErrIncompleteResponse)
				assert.NotErrorIs(t, err, service.ErrAIUnavailable)
			},
		},
		{
			name: "no roadmap phases",
			llm:  &fakeLLM{response: strings.Replace(llmResponse, `"phasedRoadmap": [`, `"phasedRoadmap": [], "unused": [`, 1)},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrAIMalformed)
				assert.ErrorIs(t, err, roadmap.ErrEmptyRoadmap)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, store, db := newAnalysisUsecase(t, tt.llm)
			user := createUser(t, db, "jane@example.com")

			_, err := uc.Analyze(context.Background(), user.ID, analyzeRequest())
			require.Error(t, err)
			tt.check(t, err)
			assert.Zero(t, store.len(), "stored documents are discarded")

			items, _, err := uc.List(context.Background(), user.ID, dto.ListAnalysesQuery{All: true})
			require.NoError(t, err)
			assert.Empty(t, items)
		})
	}
}

func TestAnalysisUsecase_AnalyzeStoreFailure(t *testing.T) {
	llm := &fakeLLM{response: llmResponse}
	uc, store, db := newAnalysisUsecase(t, llm)
	store.putErr = errBoom
	user := createUser(t, db, "jane@example.com")

	_, err := uc.Analyze(context.Background(), user.ID, analyzeRequest())
	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, llm.prompts)
	assert.Zero(t, store.len())
}

func TestAnalysisUsecase_ListGetDelete(t *testing.T) {
	uc, store, db := newAnalysisUsecase(t, &fakeLLM{response: llmResponse})
	owner := createUser(t, db, "owner@example.com")
	other := createUser(t, db, "other@example.com")
	ctx := context.Background()

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		res, err := uc.Analyze(ctx, owner.ID, analyzeRequest())
		require.NoError(t, err)
		ids = append(ids, res.Analysis.ID)
	}

	items, page, err := uc.List(ctx, owner.ID, dto.ListAnalysesQuery{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	require.NotNil(t, page)
	assert.Equal(t, int64(3), page.TotalItems)
	assert.True(t, page.HasMore)

	items, page, err = uc.List(ctx, owner.ID, dto.ListAnalysesQuery{All: true})
	require.NoError(t, err)
	assert.Len(t, items, 3)
	assert.Nil(t, page)

	_, err = uc.Get(ctx, other.ID, ids[0])
	assert.ErrorIs(t, err, ErrAnalysisNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, other.ID, ids[0]), ErrAnalysisNotFound)

	require.Equal(t, 6, store.len())
	require.NoError(t, uc.Delete(ctx, owner.ID, ids[0]))
	assert.Equal(t, 4, store.len())
	_, err = uc.Get(ctx, owner.ID, ids[0])
	assert.ErrorIs(t, err, ErrAnalysisNotFound)

	similar, err := uc.Similar(ctx, owner.ID, ids[1], 5)
	require.NoError(t, err)
	assert.Empty(t, similar, "no embedding, no neighbours")
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "héllo", truncateRunes("héllo", 5))
	assert.Equal(t, "hé", truncateRunes("héllo", 2))
}
