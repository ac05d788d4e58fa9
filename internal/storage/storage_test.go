package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fadilmartias/skillsnap/internal/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextFileName(t *testing.T) {
	tests := map[string]string{
		"resume.pdf":            "resume.txt",
		"My CV (final).DOCX":    "My_CV_final.txt",
		"C:\\Users\\me\\jd.doc": "jd.txt",
		"../../etc/passwd":      "passwd.txt",
		"":                      "document.txt",
	}
	for in, want := range tests {
		assert.Equal(t, want, TextFileName(in), in)
	}
}

func TestDocumentKey(t *testing.T) {
	userID := uuid.New()
	key := DocumentKey("resumes", userID, "cv.pdf")

	assert.True(t, strings.HasPrefix(key, "resumes/"+userID.String()+"/"))
	assert.True(t, strings.HasSuffix(key, "-cv.txt"))
	assert.NoError(t, validateKey(key))

	owner, err := OwnerOf(key)
	require.NoError(t, err)
	assert.Equal(t, userID, owner)

	for _, bad := range []string{"resumes/not-a-uuid/x.txt", "resumes/" + userID.String(), "../" + userID.String() + "/x.txt"} {
		_, err := OwnerOf(bad)
		assert.ErrorIs(t, err, ErrInvalidKey, bad)
	}
}

func TestLocalStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "http://localhost:8080/")
	require.NoError(t, err)

	ctx := context.Background()
	doc, err := store.Put(ctx, "resumes/u1/abc-cv.txt", "text/plain", []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/documents/resumes/u1/abc-cv.txt", doc.URL)

	path, err := store.Path(doc.Key)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "resumes", "u1", "abc-cv.txt"), path)
	_, err = store.Path("resumes/../../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidKey)

	data, err := os.ReadFile(filepath.Join(dir, "resumes", "u1", "abc-cv.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, store.Delete(ctx, doc.Key))
	require.NoError(t, store.Delete(ctx, doc.Key), "deleting twice is not an error")

	_, err = store.Put(ctx, "../escape.txt", "text/plain", nil)
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := New(context.Background(), &config.StorageConfig{Driver: "s3"}, "", nil)
	assert.Error(t, err)

	store, err := New(context.Background(), &config.StorageConfig{Driver: config.StorageLocal, LocalDir: t.TempDir()}, "", nil)
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, store)
}
