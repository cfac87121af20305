package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalysis "github.com/aurainsight/aura-backend/internal/application/analysis"
	appreports "github.com/aurainsight/aura-backend/internal/application/reports"
	domai "github.com/aurainsight/aura-backend/internal/domain/ai"
	domreports "github.com/aurainsight/aura-backend/internal/domain/reports"
	jwtauth "github.com/aurainsight/aura-backend/internal/infra/auth/jwt"
	"github.com/aurainsight/aura-backend/internal/infra/db/memory"
)

var testSecret = []byte("router-test-secret")

type generatorStub struct {
	out   string
	err   error
	calls int
}

func (g *generatorStub) Generate(ctx context.Context, req domai.Request) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.out, nil
}

// countingRepo wraps the memory repository to count read operations.
type countingRepo struct {
	*memory.ReportRepository
	listCalls int
	getCalls  int
}

func (c *countingRepo) ListByOwner(ctx context.Context, owner string) ([]*domreports.Summary, error) {
	c.listCalls++
	return c.ReportRepository.ListByOwner(ctx, owner)
}

func (c *countingRepo) Get(ctx context.Context, owner string, id domreports.ReportID) (*domreports.Report, error) {
	c.getCalls++
	return c.ReportRepository.Get(ctx, owner, id)
}

type testEnv struct {
	handler http.Handler
	gen     *generatorStub
	repo    *countingRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gen := &generatorStub{out: "<p>stub</p>"}
	repo := &countingRepo{ReportRepository: memory.NewReportRepository()}
	reportsSvc := appreports.NewService(repo, nil)
	analysisSvc := &appanalysis.Service{Gen: gen, Store: reportsSvc}
	verifier := jwtauth.NewVerifier(testSecret)
	return &testEnv{
		handler: NewRouter(analysisSvc, reportsSvc, verifier, nil),
		gen:     gen,
		repo:    repo,
	}
}

func token(t *testing.T, uid string, anonymous bool) string {
	t.Helper()
	tok, err := jwtauth.GenerateToken(uid, anonymous, testSecret, time.Hour)
	require.NoError(t, err)
	return tok
}

func analyzeRequest(t *testing.T, bearer, narrative, coreQuestion string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if narrative != "" {
		require.NoError(t, mw.WriteField("narrative", narrative))
	}
	if coreQuestion != "" {
		require.NoError(t, mw.WriteField("core_question", coreQuestion))
	}
	require.NoError(t, mw.WriteField("report_details", `["communication"]`))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	return req
}

func do(env *testEnv, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	return rec
}

func TestAnalyzePersistsAndLists(t *testing.T) {
	env := newTestEnv(t)
	tok := token(t, "u1", false)

	rec := do(env, analyzeRequest(t, tok, "We argue daily", "Should I stay?"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res appanalysis.AnalyzeResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "<p>stub</p>", res.HTMLReport)
	assert.NotEmpty(t, res.ReportID)
	assert.Empty(t, res.Warning)
	assert.Equal(t, 1, env.repo.SaveCount())

	// the owner sees exactly one summary
	listReq := httptest.NewRequest(http.MethodGet, "/get-reports", nil)
	listReq.Header.Set("Authorization", "Bearer "+tok)
	listRec := do(env, listReq)
	require.Equal(t, http.StatusOK, listRec.Code)

	var list []domreports.Summary
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Should I stay?", list[0].Title)

	// and can fetch the body
	getReq := httptest.NewRequest(http.MethodGet, "/get-report/"+res.ReportID, nil)
	getReq.Header.Set("Authorization", "Bearer "+tok)
	getRec := do(env, getReq)
	require.Equal(t, http.StatusOK, getRec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &body))
	assert.Equal(t, "<p>stub</p>", body["html_report"])
}

func TestAnalyzeAnonymousNotPersisted(t *testing.T) {
	env := newTestEnv(t)
	tok := token(t, "guest-1", true)

	rec := do(env, analyzeRequest(t, tok, "We argue daily", "Should I stay?"))
	require.Equal(t, http.StatusOK, rec.Code)

	var res appanalysis.AnalyzeResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "<p>stub</p>", res.HTMLReport)
	assert.Empty(t, res.ReportID)
	assert.Zero(t, env.repo.SaveCount(), "anonymous analyses must not be stored")
}

func TestAnalyzeMissingAuthHeader(t *testing.T) {
	env := newTestEnv(t)
	rec := do(env, analyzeRequest(t, "", "We argue daily", "Should I stay?"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, env.gen.calls, "protected operation must not run")
}

func TestAnalyzeInvalidInput(t *testing.T) {
	env := newTestEnv(t)
	tok := token(t, "u1", false)

	rec := do(env, analyzeRequest(t, tok, "", "Should I stay?"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, env.gen.calls, "no AI call on invalid input")
	assert.Zero(t, env.repo.SaveCount())
}

func TestAnalyzeGenerationUnavailable(t *testing.T) {
	env := newTestEnv(t)
	env.gen.err = domai.ErrGenerationUnavailable
	tok := token(t, "u1", false)

	rec := do(env, analyzeRequest(t, tok, "We argue daily", "Should I stay?"))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Zero(t, env.repo.SaveCount())
}

func TestGetReportsExpiredToken(t *testing.T) {
	env := newTestEnv(t)
	expired, err := jwtauth.GenerateToken("u1", false, testSecret, -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/get-reports", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	rec := do(env, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, env.repo.listCalls, "store must not be touched on auth failure")
}

func TestGetReportsForgedToken(t *testing.T) {
	env := newTestEnv(t)
	forged, err := jwtauth.GenerateToken("u1", false, []byte("wrong-secret"), time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/get-reports", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	rec := do(env, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, env.repo.listCalls)
}

func TestCrossPrincipalIsolation(t *testing.T) {
	env := newTestEnv(t)
	tok1 := token(t, "u1", false)
	tok2 := token(t, "u2", false)

	rec := do(env, analyzeRequest(t, tok1, "We argue daily", "Should I stay?"))
	require.Equal(t, http.StatusOK, rec.Code)
	var res appanalysis.AnalyzeResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	// u2 cannot list u1's report
	listReq := httptest.NewRequest(http.MethodGet, "/get-reports", nil)
	listReq.Header.Set("Authorization", "Bearer "+tok2)
	listRec := do(env, listReq)
	require.Equal(t, http.StatusOK, listRec.Code)
	var list []domreports.Summary
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &list))
	assert.Empty(t, list)

	// u2 fetching u1's id looks exactly like a missing report
	getReq := httptest.NewRequest(http.MethodGet, "/get-report/"+res.ReportID, nil)
	getReq.Header.Set("Authorization", "Bearer "+tok2)
	getRec := do(env, getReq)
	assert.Equal(t, http.StatusNotFound, getRec.Code)

	absentReq := httptest.NewRequest(http.MethodGet, "/get-report/00000000-0000-0000-0000-000000000000", nil)
	absentReq.Header.Set("Authorization", "Bearer "+tok2)
	absentRec := do(env, absentReq)
	assert.Equal(t, http.StatusNotFound, absentRec.Code)
	assert.Equal(t, getRec.Body.String(), absentRec.Body.String(),
		"foreign and absent reports must be indistinguishable")
}

func TestGetReportMalformedID(t *testing.T) {
	env := newTestEnv(t)
	tok := token(t, "u1", false)

	req := httptest.NewRequest(http.MethodGet, "/get-report/not-a-uuid", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := do(env, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLivenessUnauthenticated(t *testing.T) {
	env := newTestEnv(t)
	rec := do(env, httptest.NewRequest(http.MethodGet, "/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
