package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lexirank/internal/config"
	"github.com/abhisek/lexirank/internal/scoring"
	"github.com/abhisek/lexirank/internal/store"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	st, err := store.Open("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := scoring.NewService(st.ResultRepo(), logger)
	srv := NewServer(config.ServerConfig{AllowedOrigins: []string{"*"}}, svc, logger)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func doRawRequest(t *testing.T, method, url, body string) (int, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func doRequest(t *testing.T, method, url, body string) (int, envelope) {
	t.Helper()
	status, data := doRawRequest(t, method, url, body)

	var env envelope
	require.NoError(t, json.Unmarshal(data, &env), string(data))
	return status, env
}

const masterySheet = `{
  "student_id": "stu-1",
  "test_id": "placement",
  "answers": [
    {"difficulty_level": 1, "lesson_id": "L1", "is_correct": true},
    {"difficulty_level": 1, "lesson_id": "L2", "is_correct": true},
    {"difficulty_level": 2, "lesson_id": "L1", "is_correct": false},
    {"difficulty_level": 3, "lesson_id": "L1", "is_correct": false}
  ],
  "client_result": {"rank": 1, "sublevel": 25}
}`

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	status, env := doRequest(t, http.MethodGet, ts.URL+"/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
	assert.Contains(t, string(env.Data), "healthy")
}

func TestRanks(t *testing.T) {
	ts := newTestServer(t)

	status, env := doRequest(t, http.MethodGet, ts.URL+"/api/v1/ranks", "")
	require.Equal(t, http.StatusOK, status)
	var tiers []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &tiers))
	assert.Len(t, tiers, 10)

	status, env = doRequest(t, http.MethodGet, ts.URL+"/api/v1/ranks/99", "")
	require.Equal(t, http.StatusOK, status)
	var tier map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &tier))
	assert.Equal(t, "Legend", tier["name"])

	status, env = doRequest(t, http.MethodGet, ts.URL+"/api/v1/ranks/abc", "")
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "invalid_request", env.Error.Code)
}

func TestEstimate(t *testing.T) {
	ts := newTestServer(t)

	status, env := doRequest(t, http.MethodPost, ts.URL+"/api/v1/level", masterySheet)
	require.Equal(t, http.StatusOK, status)

	var got levelResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 1, got.Rank)
	assert.Equal(t, 25, got.Sublevel)
	assert.True(t, got.Mastered)
	assert.Equal(t, "Rookie", got.Tier.Name)
	assert.Len(t, got.Ranks, 3)

	// Estimates are not stored.
	status, env = doRequest(t, http.MethodGet, ts.URL+"/api/v1/students/stu-1/results", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(env.Data))
}

func TestEstimate_Invalid(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", "{"},
		{"missing student", `{"answers": []}`},
		{"bad level", `{"student_id": "s", "answers": [{"difficulty_level": 0, "lesson_id": "a", "is_correct": true}]}`},
		{"missing is_correct", `{"student_id": "s", "answers": [{"difficulty_level": 1, "lesson_id": "a"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := doRequest(t, http.MethodPost, ts.URL+"/api/v1/level", tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, "invalid_request", env.Error.Code)
		})
	}
}

func TestSubmitAndFetchResult(t *testing.T) {
	ts := newTestServer(t)

	status, env := doRequest(t, http.MethodPost, ts.URL+"/api/v1/results", masterySheet)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, env.Success)

	var scored scoreResponse
	require.NoError(t, json.Unmarshal(env.Data, &scored))
	assert.Equal(t, 1, scored.Rank)
	assert.Equal(t, 25, scored.Sublevel)
	assert.True(t, scored.Reconciled)
	require.NotNil(t, scored.Result)
	id := scored.Result.ID
	assert.NotEmpty(t, id)

	status, env = doRequest(t, http.MethodGet, ts.URL+"/api/v1/results/"+id, "")
	require.Equal(t, http.StatusOK, status)

	var rec resultResponse
	require.NoError(t, json.Unmarshal(env.Data, &rec))
	assert.Equal(t, "stu-1", rec.StudentID)
	assert.Equal(t, "placement", rec.TestID)
	assert.Equal(t, "Rookie", rec.TierName)
	assert.Equal(t, 4, rec.AnswerCount)
	assert.Equal(t, "server", rec.Source)
	require.NotNil(t, rec.Client)
	assert.Equal(t, 25, rec.Client.Sublevel)

	var sent struct {
		Answers json.RawMessage `json:"answers"`
	}
	require.NoError(t, json.Unmarshal([]byte(masterySheet), &sent))
	assert.JSONEq(t, string(sent.Answers), string(rec.Answers))

	status, env = doRequest(t, http.MethodGet, ts.URL+"/api/v1/students/stu-1/results?limit=5", "")
	require.Equal(t, http.StatusOK, status)
	var list []resultResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
}

func TestSubmit_ClientMismatch(t *testing.T) {
	ts := newTestServer(t)

	body := strings.Replace(masterySheet, `"sublevel": 25`, `"sublevel": 2`, 1)
	status, env := doRequest(t, http.MethodPost, ts.URL+"/api/v1/results", body)
	require.Equal(t, http.StatusCreated, status)

	var scored scoreResponse
	require.NoError(t, json.Unmarshal(env.Data, &scored))
	assert.False(t, scored.Reconciled)
	assert.Equal(t, 25, scored.Sublevel, "server result wins")
	require.NotNil(t, scored.Client)
	assert.Equal(t, 2, scored.Client.Sublevel)
}

func TestResult_AnswersEchoedVerbatim(t *testing.T) {
	ts := newTestServer(t)

	rawAnswers := `[ {"difficulty_level": 1,  "lesson_id": "<b>A&B</b>", "is_correct": true},
	  {"difficulty_level": 2, "lesson_id": "x", "is_correct": false} ]`
	body := `{"student_id": "stu-<9>", "answers": ` + rawAnswers + `}`

	status, created := doRawRequest(t, http.MethodPost, ts.URL+"/api/v1/results", body)
	require.Equal(t, http.StatusCreated, status)
	assert.Contains(t, string(created), `"answers":`+rawAnswers)

	var env envelope
	require.NoError(t, json.Unmarshal(created, &env), string(created))
	var scored scoreResponse
	require.NoError(t, json.Unmarshal(env.Data, &scored))
	require.NotNil(t, scored.Result)
	assert.Equal(t, "stu-<9>", scored.Result.StudentID)

	status, fetched := doRawRequest(t, http.MethodGet, ts.URL+"/api/v1/results/"+scored.Result.ID, "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(fetched), `"answers":`+rawAnswers)
	assert.NotContains(t, string(fetched), `\u003c`)

	status, listed := doRawRequest(t, http.MethodGet, ts.URL+"/api/v1/students/stu-%3C9%3E/results", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(listed), `"answers":`+rawAnswers)

	require.NoError(t, json.Unmarshal(fetched, &env))
	assert.True(t, env.Success)
	var rec resultResponse
	require.NoError(t, json.Unmarshal(env.Data, &rec))
	assert.Equal(t, rawAnswers, string(rec.Answers))
	assert.Equal(t, 2, rec.AnswerCount)
}

func TestLatestResult(t *testing.T) {
	ts := newTestServer(t)

	status, env := doRequest(t, http.MethodGet, ts.URL+"/api/v1/students/stu-1/results/latest", "")
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "not_found", env.Error.Code)

	var ids []string
	for range 2 {
		status, env = doRequest(t, http.MethodPost, ts.URL+"/api/v1/results", masterySheet)
		require.Equal(t, http.StatusCreated, status)
		var scored scoreResponse
		require.NoError(t, json.Unmarshal(env.Data, &scored))
		ids = append(ids, scored.Result.ID)
	}

	status, env = doRequest(t, http.MethodGet, ts.URL+"/api/v1/students/stu-1/results/latest", "")
	require.Equal(t, http.StatusOK, status)
	var rec resultResponse
	require.NoError(t, json.Unmarshal(env.Data, &rec))
	assert.Equal(t, ids[1], rec.ID)
	assert.Equal(t, "server", rec.Source)
}

func TestGetResult_NotFound(t *testing.T) {
	ts := newTestServer(t)

	status, env := doRequest(t, http.MethodGet, ts.URL+"/api/v1/results/missing", "")
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "not_found", env.Error.Code)
}

func TestStudentResults_BadLimit(t *testing.T) {
	ts := newTestServer(t)

	status, env := doRequest(t, http.MethodGet, ts.URL+"/api/v1/students/stu-1/results?limit=0", "")
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "invalid_request", env.Error.Code)
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
