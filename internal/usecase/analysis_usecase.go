package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fadilmartias/skillsnap/internal/dto"
	"github.com/fadilmartias/skillsnap/internal/logger"
	"github.com/fadilmartias/skillsnap/internal/model"
	"github.com/fadilmartias/skillsnap/internal/normalizer"
	"github.com/fadilmartias/skillsnap/internal/repository"
	"github.com/fadilmartias/skillsnap/internal/response"
	"github.com/fadilmartias/skillsnap/internal/roadmap"
	"github.com/fadilmartias/skillsnap/internal/service"
	"github.com/fadilmartias/skillsnap/internal/storage"
	"github.com/fadilmartias/skillsnap/internal/util"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"golang.org/x/sync/errgroup"
)

const (
	storedJobDescriptionChars = 5000
	defaultPageSize           = 10
	defaultSimilarLimit       = 5
	maxSimilarLimit           = 20
)

type AnalysisUsecase struct {
	analysisRepo *repository.AnalysisRepository
	llm          service.LLMServiceInterface
	embedder     service.EmbeddingServiceInterface
	store        storage.DocumentStore
	log          *logger.Logger
	now          func() time.Time
}

// NewAnalysisUsecase wires the analysis pipeline. embedder may be nil, in
// which case analyses are stored without a job description embedding.
func NewAnalysisUsecase(analysisRepo *repository.AnalysisRepository, llm service.LLMServiceInterface, embedder service.EmbeddingServiceInterface, store storage.DocumentStore, log *logger.Logger) *AnalysisUsecase {
	if log == nil {
		log = logger.Nop()
	}
	return &AnalysisUsecase{
		analysisRepo: analysisRepo,
		llm:          llm,
		embedder:     embedder,
		store:        store,
		log:          log,
		now:          time.Now,
	}
}

type AnalyzeResult struct {
	Analysis *model.ResumeAnalysis
	Warnings []string
}

// Analyze validates both documents, stores them, asks the LLM for the
// analysis and persists the normalized result with its roadmap.
func (uc *AnalysisUsecase) Analyze(ctx context.Context, userID uuid.UUID, req dto.AnalyzeRequest) (*AnalyzeResult, error) {
	resumeText := strings.TrimSpace(req.ResumeText)
	jdText := strings.TrimSpace(req.JDText)

	var warnings []string
	for _, doc := range []struct{ field, text string }{{"resumeText", resumeText}, {"jdText", jdText}} {
		check, err := util.CheckDocumentText(doc.text)
		if err != nil {
			return nil, invalidInput(doc.field, err)
		}
		if check.Warning != "" {
			uc.log.Warn("document check warning", "user_id", userID, "field", doc.field, "warning", check.Warning)
			warnings = append(warnings, doc.field+": "+check.Warning)
		}
	}

	resumeDoc, jdDoc, err := uc.storeDocuments(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	analysis, err := uc.analyze(ctx, userID, resumeText, jdText)
	if err != nil {
		uc.discardDocuments(resumeDoc, jdDoc)
		return nil, err
	}

	analysis.FileName = req.ResumeFileName
	analysis.ResumeURL = resumeDoc.URL
	analysis.ResumeStorageKey = resumeDoc.Key
	analysis.JobDescriptionFileName = req.JDFileName
	analysis.JobDescriptionURL = jdDoc.URL
	analysis.JobDescriptionStorageKey = jdDoc.Key

	if err := uc.analysisRepo.Create(ctx, analysis); err != nil {
		uc.discardDocuments(resumeDoc, jdDoc)
		return nil, fmt.Errorf("save analysis: %w", err)
	}

	uc.log.Info("analysis created",
		"user_id", userID,
		"analysis_id", analysis.ID,
		"steps", len(analysis.Steps),
		"match_percent", analysis.MatchPercent,
	)
	return &AnalyzeResult{Analysis: analysis, Warnings: warnings}, nil
}

func (uc *AnalysisUsecase) storeDocuments(ctx context.Context, userID uuid.UUID, req dto.AnalyzeRequest) (resumeDoc, jdDoc *storage.StoredDocument, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		resumeDoc, err = uc.store.Put(gctx, storage.DocumentKey("resumes", userID, req.ResumeFileName), "text/plain; charset=utf-8", []byte(req.ResumeText))
		if err != nil {
			return fmt.Errorf("store resume: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		jdDoc, err = uc.store.Put(gctx, storage.DocumentKey("job-descriptions", userID, req.JDFileName), "text/plain; charset=utf-8", []byte(req.JDText))
		if err != nil {
			return fmt.Errorf("store job description: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		uc.discardDocuments(resumeDoc, jdDoc)
		return nil, nil, err
	}
	return resumeDoc, jdDoc, nil
}

func (uc *AnalysisUsecase) analyze(ctx context.Context, userID uuid.UUID, resumeText, jdText string) (*model.ResumeAnalysis, error) {
	raw, err := uc.llm.GenerateJSON(ctx, service.BuildAnalysisPrompt(resumeText, jdText))
	if err != nil {
		return nil, service.ClassifyLLMError(err)
	}

	result, err := normalizer.Normalize(raw)
	if err != nil {
		uc.log.Warn("AI response rejected", "user_id", userID, "error", err, "raw_response", raw)
		return nil, fmt.Errorf("%w: %w", ErrAIMalformed, err)
	}
	if result.Repaired {
		uc.log.Warn("AI response was repaired", "user_id", userID)
	}

	rm, err := roadmap.Convert(result.PhasedRoadmap)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAIMalformed, err)
	}

	now := uc.now()
	analysis := &model.ResumeAnalysis{
		UserID:                  userID,
		JobRole:                 result.ExtractedJobTitle,
		ExperienceLevel:         model.ExperienceMid,
		JobDescription:          truncateRunes(jdText, storedJobDescriptionChars),
		ExtractedJobTitle:       result.ExtractedJobTitle,
		SimilarityPercentage:    result.SimilarityPercentage,
		MatchPercent:            result.MatchPercent,
		ATSScore:                result.ATSScore,
		ATSScoreExplanation:     result.ATSScoreExplanation,
		SkillsFound:             result.SkillsFound,
		MissingSkills:           result.MissingSkills,
		Suggestions:             result.Suggestions,
		StrengthAreas:           result.StrengthAreas,
		ImprovementAreas:        result.ImprovementAreas,
		RoadmapGeneratedAt:      now,
		TotalEstimatedDuration:  rm.TotalEstimatedDuration,
		Steps:                   rm.Steps,
		OverallProgress:         roadmap.Summarize(rm.Steps),
		JobDescriptionEmbedding: uc.embed(ctx, userID, jdText),
	}
	return analysis, nil
}

// embed is best effort: a failure only costs the similar-analyses feature.
func (uc *AnalysisUsecase) embed(ctx context.Context, userID uuid.UUID, text string) *pgvector.Vector {
	if uc.embedder == nil {
		return nil
	}
	values, err := uc.embedder.GenerateEmbedding(ctx, text)
	if err != nil {
		uc.log.Warn("job description embedding failed", "user_id", userID, "error", err)
		return nil
	}
	v := pgvector.NewVector(values)
	return &v
}

func (uc *AnalysisUsecase) discardDocuments(docs ...*storage.StoredDocument) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		if err := uc.store.Delete(ctx, doc.Key); err != nil {
			uc.log.Warn("stored document cleanup failed", "key", doc.Key, "error", err)
		}
	}
}

func (uc *AnalysisUsecase) List(ctx context.Context, userID uuid.UUID, q dto.ListAnalysesQuery) ([]dto.AnalysisListItem, *response.Pagination, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultPageSize
	}

	analyses, total, err := uc.analysisRepo.List(ctx, repository.ListAnalysesParams{
		UserID:  userID,
		JobRole: strings.TrimSpace(q.JobRole),
		SortBy:  q.SortBy,
		Page:    q.Page,
		Limit:   q.Limit,
		All:     q.All,
	})
	if err != nil {
		return nil, nil, err
	}

	items := make([]dto.AnalysisListItem, 0, len(analyses))
	for _, a := range analyses {
		items = append(items, dto.NewAnalysisListItem(a))
	}
	if q.All {
		return items, nil, nil
	}
	return items, response.NewPagination(q.Page, q.Limit, total), nil
}

func (uc *AnalysisUsecase) Get(ctx context.Context, userID, analysisID uuid.UUID) (*model.ResumeAnalysis, error) {
	analysis, err := uc.analysisRepo.FindForUser(ctx, analysisID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAnalysisNotFound
		}
		return nil, err
	}
	return analysis, nil
}

// Delete removes the analysis and its dependents. Stored documents are
// removed afterwards on a best effort basis.
func (uc *AnalysisUsecase) Delete(ctx context.Context, userID, analysisID uuid.UUID) error {
	deleted, err := uc.analysisRepo.Delete(ctx, analysisID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAnalysisNotFound
		}
		return err
	}

	for _, key := range []string{deleted.ResumeStorageKey, deleted.JobDescriptionStorageKey} {
		if key == "" {
			continue
		}
		if err := uc.store.Delete(ctx, key); err != nil {
			uc.log.Warn("stored document cleanup failed", "analysis_id", analysisID, "key", key, "error", err)
		}
	}
	uc.log.Info("analysis deleted", "user_id", userID, "analysis_id", analysisID)
	return nil
}

// Similar lists the user's previous analyses closest to this one's job
// description. An analysis without an embedding has no neighbours.
func (uc *AnalysisUsecase) Similar(ctx context.Context, userID, analysisID uuid.UUID, limit int) ([]repository.SimilarAnalysis, error) {
	analysis, err := uc.Get(ctx, userID, analysisID)
	if err != nil {
		return nil, err
	}
	if analysis.JobDescriptionEmbedding == nil {
		return []repository.SimilarAnalysis{}, nil
	}
	if limit < 1 {
		limit = defaultSimilarLimit
	}
	if limit > maxSimilarLimit {
		limit = maxSimilarLimit
	}

	similar, err := uc.analysisRepo.FindSimilar(ctx, userID, analysisID, *analysis.JobDescriptionEmbedding, limit)
	if err != nil {
		return nil, err
	}
	if similar == nil {
		similar = []repository.SimilarAnalysis{}
	}
	return similar, nil
}

// Extract pulls text out of an uploaded PDF. Length problems are reported as
// a warning so the client can still show what was read.
func (uc *AnalysisUsecase) Extract(ctx context.Context, data []byte) (*dto.ExtractResponse, error) {
	text, err := util.ExtractPDFText(ctx, data, uc.log)
	if err != nil {
		return nil, invalidInput("file", err)
	}

	res := &dto.ExtractResponse{Text: text, Characters: utf8.RuneCountInString(text)}
	check, err := util.CheckDocumentText(text)
	switch {
	case err != nil:
		res.Warning = err.Error()
	case check.Warning != "":
		res.Warning = check.Warning
	}
	return res, nil
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
