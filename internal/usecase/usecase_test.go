package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/fadilmartias/skillsnap/internal/model"
	"github.com/fadilmartias/skillsnap/internal/repository"
	"github.com/fadilmartias/skillsnap/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const llmResponse = `{
  "extractedJobTitle": "Backend Engineer",
  "similarityPercentage": 61,
  "matchPercent": 58,
  "atsScore": 74,
  "atsScoreExplanation": "Solid keywords, weak metrics",
  "skillsFound": ["Go", "PostgreSQL"],
  "missingSkills": ["Kubernetes", "Kafka"],
  "suggestions": [{"category": "keywords", "priority": "high", "title": "Mention Kubernetes", "description": "List cluster work"}],
  "strengthAreas": ["APIs"],
  "improvementAreas": ["Ops"],
  "phasedRoadmap": [
    {"skill": "Kubernetes", "phases": [
      {"phase": "Basics", "goal": "Run a pod", "duration": "1 week",
       "learningResources": {"documentation": [{"title": "Concepts", "url": "https://kubernetes.io/docs", "provider": "CNCF"}]}},
      {"phase": "Operations", "goal": "Run a cluster", "duration": "2 weeks", "learningResources": {}}
    ]},
    {"skill": "Kafka", "phases": [
      {"phase": "Basics", "goal": "Produce and consume", "duration": "1 week", "learningResources": {}}
    ]}
  ]
}`

var (
	resumeText = "Jane Doe, jane@example.com. Experience: five years of Go services, PostgreSQL and REST APIs."
	jdText     = "We are hiring a Backend Engineer with Go, Kubernetes and Kafka experience to build data pipelines."
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	u := &model.User{Email: email, FullName: "Test User", PasswordHash: "x"}
	require.NoError(t, repository.NewUserRepository(db).Create(context.Background(), u))
	return u
}

type fakeLLM struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeLLM) GenerateJSON(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

type fakeEmbedder struct {
	err error
}

func (f *fakeEmbedder) GenerateEmbedding(context.Context, string) ([]float32, error) {
	return nil, f.err
}

type memoryStore struct {
	mu     sync.Mutex
	docs   map[string][]byte
	putErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{docs: map[string][]byte{}}
}

func (s *memoryStore) Put(_ context.Context, key, _ string, data []byte) (*storage.StoredDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil && strings.HasPrefix(key, "job-descriptions/") {
		return nil, s.putErr
	}
	s.docs[key] = data
	return &storage.StoredDocument{Key: key, URL: "http://files.test/" + key}, nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, key)
	return nil
}

func (s *memoryStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

var errBoom = errors.New("boom")
