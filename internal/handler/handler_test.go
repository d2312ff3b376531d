package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"wordaday/internal/domain"
	"wordaday/internal/service"
	"wordaday/internal/testutil"
)

const testAdminToken = "test-admin-token"

func newTestRouter(t *testing.T, seed domain.Ledger, gen *testutil.MockGenerator) (*gin.Engine, *testutil.MemoryLedgerStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := testutil.NewMemoryLedgerStore(seed)
	logger := testutil.NewTestLogger()

	lifecycle := service.NewLifecycleService(store, gen, nil, time.UTC, logger)
	subs := service.NewSubmissionService(store, logger)

	engine := gin.New()
	h := NewHandler(store, subs, lifecycle, testAdminToken, logger)
	h.Register(engine)

	return engine, store
}

func doJSON(router *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_GetCurrentWord(t *testing.T) {
	seed := domain.Ledger{
		Current: &domain.Word{
			Word:      "Blorvek",
			Date:      "2024-01-02",
			Image:     []byte{1, 2},
			AIMeaning: "A floating feeling.",
		},
	}
	router, _ := newTestRouter(t, seed, new(testutil.MockGenerator))

	rec := doJSON(router, http.MethodGet, "/api/word", nil, "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp wordResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Blorvek", resp.Word)
	assert.Equal(t, "2024-01-02", resp.Date)
	assert.True(t, resp.HasImage)
	assert.Equal(t, "/api/word/image", resp.ImageURL)
}

func TestHandler_GetCurrentWord_Empty(t *testing.T) {
	router, _ := newTestRouter(t, domain.Ledger{}, new(testutil.MockGenerator))

	rec := doJSON(router, http.MethodGet, "/api/word", nil, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"word": null}`, rec.Body.String())
}

func TestHandler_GetCurrentImage(t *testing.T) {
	seed := domain.Ledger{
		Current: &domain.Word{Word: "Blorvek", Date: "2024-01-02", Image: []byte{0x89, 'P'}},
	}
	router, _ := newTestRouter(t, seed, new(testutil.MockGenerator))

	rec := doJSON(router, http.MethodGet, "/api/word/image", nil, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, []byte{0x89, 'P'}, rec.Body.Bytes())
}

func TestHandler_GetCurrentImage_Missing(t *testing.T) {
	seed := domain.Ledger{Current: &domain.Word{Word: "Blorvek", Date: "2024-01-02"}}
	router, _ := newTestRouter(t, seed, new(testutil.MockGenerator))

	rec := doJSON(router, http.MethodGet, "/api/word/image", nil, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Submit(t *testing.T) {
	seed := domain.Ledger{Current: &domain.Word{Word: "Blorvek", Date: "2024-01-02"}}
	router, store := newTestRouter(t, seed, new(testutil.MockGenerator))

	rec := doJSON(router, http.MethodPost, "/api/submissions",
		map[string]string{"text": "a floating feeling", "username": "dave"}, "")

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp submissionResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Blorvek", resp.Word)
	assert.Equal(t, 0, resp.Likes)

	assert.Len(t, store.Ledger().Submissions, 1)
}

func TestHandler_Submit_Invalid(t *testing.T) {
	seed := domain.Ledger{Current: &domain.Word{Word: "Blorvek", Date: "2024-01-02"}}
	router, store := newTestRouter(t, seed, new(testutil.MockGenerator))

	rec := doJSON(router, http.MethodPost, "/api/submissions",
		map[string]string{"text": "   "}, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.Ledger().Submissions)
}

func TestHandler_Submit_NoCurrentWord(t *testing.T) {
	router, _ := newTestRouter(t, domain.Ledger{}, new(testutil.MockGenerator))

	rec := doJSON(router, http.MethodPost, "/api/submissions",
		map[string]string{"text": "a floating feeling"}, "")

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandler_ListSubmissions(t *testing.T) {
	seed := domain.Ledger{
		Current: &domain.Word{Word: "Blorvek", Date: "2024-01-02"},
		Submissions: []domain.Submission{
			testutil.NewTestSubmission("one", "Blorvek", "a floating feeling", "dave"),
			testutil.NewTestSubmission("two", "Blorvek", "the smell of rain", "kate"),
		},
	}
	router, _ := newTestRouter(t, seed, new(testutil.MockGenerator))

	rec := doJSON(router, http.MethodGet, "/api/submissions", nil, "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Submissions []submissionResponse `json:"submissions"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Submissions, 2)
	assert.Equal(t, "one", resp.Submissions[0].ID)
	assert.Equal(t, "two", resp.Submissions[1].ID)
}

func TestHandler_Like_NotFound(t *testing.T) {
	seed := domain.Ledger{Current: &domain.Word{Word: "Blorvek", Date: "2024-01-02"}}
	router, _ := newTestRouter(t, seed, new(testutil.MockGenerator))

	rec := doJSON(router, http.MethodPost, "/api/submissions/missing/like", nil, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Like(t *testing.T) {
	seed := domain.Ledger{
		Current: &domain.Word{Word: "Blorvek", Date: "2024-01-02"},
		Submissions: []domain.Submission{
			testutil.NewTestSubmission("one", "Blorvek", "a floating feeling", "dave"),
		},
	}
	router, _ := newTestRouter(t, seed, new(testutil.MockGenerator))

	rec := doJSON(router, http.MethodPost, "/api/submissions/one/like", nil, "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp submissionResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Likes)
}

func TestHandler_ListArchive(t *testing.T) {
	seed := domain.Ledger{
		Archive: []domain.ArchivedWord{
			{Word: "Blorvek", Date: "2024-01-01", WinningDefinitions: []string{"a floating feeling"}, Image: []byte{1}},
			{Word: "Quibbleton", Date: "2023-12-31", WinningDefinitions: []string{domain.NoDefinitionsMessage}},
		},
	}
	router, _ := newTestRouter(t, seed, new(testutil.MockGenerator))

	rec := doJSON(router, http.MethodGet, "/api/archive", nil, "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Archive []archivedWordResponse `json:"archive"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Archive, 2)
	assert.Equal(t, "Blorvek", resp.Archive[0].Word)
	assert.Equal(t, "/api/archive/2024-01-01/image", resp.Archive[0].ImageURL)
	assert.False(t, resp.Archive[1].HasImage)
}

func TestHandler_EnsureDay(t *testing.T) {
	gen := new(testutil.MockGenerator)
	gen.On("GenerateWord", mock.Anything).Return("Glimmerton", nil)
	gen.On("GenerateImage", mock.Anything, "Glimmerton").
		Return(nil, fmt.Errorf("%w: image", domain.ErrGenerationUnavailable))
	gen.On("DefineWord", mock.Anything, "Glimmerton").
		Return("", fmt.Errorf("%w: meaning", domain.ErrGenerationUnavailable))

	router, store := newTestRouter(t, domain.Ledger{}, gen)

	rec := doJSON(router, http.MethodPost, "/api/day/ensure", nil, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Glimmerton", store.Ledger().Current.Word)
}

func TestHandler_EnsureDay_GenerationUnavailable(t *testing.T) {
	gen := new(testutil.MockGenerator)
	gen.On("GenerateWord", mock.Anything).
		Return("", fmt.Errorf("%w: word", domain.ErrGenerationUnavailable))

	router, _ := newTestRouter(t, domain.Ledger{}, gen)

	rec := doJSON(router, http.MethodPost, "/api/day/ensure", nil, "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandler_AdminAuth(t *testing.T) {
	seed := domain.Ledger{Current: &domain.Word{Word: "Blorvek", Date: "2024-01-02"}}

	tests := []struct {
		name     string
		token    string
		expected int
	}{
		{name: "missing token", token: "", expected: http.StatusUnauthorized},
		{name: "wrong token", token: "nope", expected: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestRouter(t, seed, new(testutil.MockGenerator))

			rec := doJSON(router, http.MethodPost, "/api/admin/summarize", nil, tt.token)
			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestHandler_AdminForceSetWord(t *testing.T) {
	gen := new(testutil.MockGenerator)
	gen.On("GenerateImage", mock.Anything, "Glorphix").
		Return(nil, fmt.Errorf("%w: image", domain.ErrGenerationUnavailable))
	gen.On("DefineWord", mock.Anything, "Glorphix").
		Return("", fmt.Errorf("%w: meaning", domain.ErrGenerationUnavailable))

	router, store := newTestRouter(t, domain.Ledger{}, gen)

	rec := doJSON(router, http.MethodPost, "/api/admin/word",
		map[string]string{"word": "Glorphix"}, testAdminToken)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Glorphix", store.Ledger().Current.Word)
}

func TestHandler_AdminRegenerateImage_NoCurrentWord(t *testing.T) {
	router, _ := newTestRouter(t, domain.Ledger{}, new(testutil.MockGenerator))

	rec := doJSON(router, http.MethodPost, "/api/admin/image/regenerate", nil, testAdminToken)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
