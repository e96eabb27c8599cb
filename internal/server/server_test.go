package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholar-rag/internal/generator"
	"scholar-rag/internal/models"
)

type stubGenerator struct {
	result generator.Result
	err    error
}

func (s *stubGenerator) Answer(ctx context.Context, query string) (generator.Result, error) {
	return s.result, s.err
}

func doAsk(t *testing.T, gen generator.Generator, body string) (*httptest.ResponseRecorder, AskResponse) {
	t.Helper()
	srv := New(gen, "http://localhost:4200")
	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	var resp AskResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestHealth(t *testing.T) {
	srv := New(&stubGenerator{}, "http://localhost:4200")
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestAskSuccess(t *testing.T) {
	gen := &stubGenerator{result: generator.Result{
		Kind:   generator.KindGenerated,
		Answer: "Ridge shrinks coefficients [1].",
		Chunks: []models.RetrievedChunk{
			{Text: "evidence", Metadata: map[string]string{"paper_id": "1234.5678v1", "paper_title": "T", "section": "intro"}},
		},
	}}

	rec, resp := doAsk(t, gen, `{"question":"what is ridge?"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ridge shrinks coefficients [1].", resp.Answer)
	require.Len(t, resp.Sources, 1)
	assert.Equal(t, "https://arxiv.org/abs/1234.5678", resp.Sources[0].Link)
}

func TestAskGeneratorErrorDegradesTo200(t *testing.T) {
	gen := &stubGenerator{err: errors.New("index offline")}

	rec, resp := doAsk(t, gen, `{"question":"q"}`)
	require.Equal(t, http.StatusOK, rec.Code, "AI failures never surface as error statuses")
	assert.Equal(t, models.FallbackAnswer, resp.Answer)
	assert.NotNil(t, resp.Sources)
	assert.Empty(t, resp.Sources)
}

func TestAskNoEvidenceEmptySources(t *testing.T) {
	gen := &stubGenerator{result: generator.Result{Kind: generator.KindNoEvidence, Answer: models.NoResultsAnswer}}

	rec, resp := doAsk(t, gen, `{"question":"q"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.NoResultsAnswer, resp.Answer)
	assert.Empty(t, resp.Sources)
}

func TestAskInvalidBody(t *testing.T) {
	rec, _ := doAsk(t, &stubGenerator{}, "{nope")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAskMethodNotAllowed(t *testing.T) {
	srv := New(&stubGenerator{}, "http://localhost:4200")
	req := httptest.NewRequest(http.MethodGet, "/ask", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORSHeaders(t *testing.T) {
	srv := New(&stubGenerator{}, "http://localhost:4200")
	req := httptest.NewRequest(http.MethodOptions, "/ask", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:4200", rec.Header().Get("Access-Control-Allow-Origin"))
}
