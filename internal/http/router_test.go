package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/genealogy-backend/internal/data/cache"
	"github.com/yungbote/genealogy-backend/internal/data/graph"
	types "github.com/yungbote/genealogy-backend/internal/domain"
	httpH "github.com/yungbote/genealogy-backend/internal/http/handlers"
	"github.com/yungbote/genealogy-backend/internal/observability"
	"github.com/yungbote/genealogy-backend/internal/platform/logger"
	"github.com/yungbote/genealogy-backend/internal/services"
)

type envelope struct {
	Status          string                `json:"status"`
	Message         string                `json:"message"`
	Code            string                `json:"code"`
	Person          types.PersonDTO       `json:"person"`
	People          []types.PersonDTO     `json:"people"`
	Males           []types.PersonDTO     `json:"males"`
	Females         []types.PersonDTO     `json:"females"`
	UnmarriedPeople []types.PersonDTO     `json:"unmarriedPeople"`
	MarriedPeople   []types.PersonDTO     `json:"marriedPeople"`
	Spouses         []types.SpousePair    `json:"spouses"`
	DeletedMarriage types.DeletedMarriage `json:"deletedMarriage"`
}

func newTestRouter(t *testing.T, store graph.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()
	metrics := observability.NewMetrics()
	svc := services.NewGenealogyService(store, cache.NewMemoryViewCache(), metrics, log)
	return NewRouter(RouterConfig{
		Log:              log,
		Metrics:          metrics,
		GenealogyHandler: httpH.NewGenealogyHandler(svc),
		HealthHandler:    httpH.NewHealthHandler(svc),
	})
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec.Code, env
}

func addPerson(t *testing.T, r *gin.Engine, name, gender string) string {
	t.Helper()
	code, env := do(t, r, http.MethodPost, "/genealogy/addPerson", map[string]string{
		"name": name, "surname": "Kowal", "birthDate": "1950-01-01", "gender": gender,
	})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "success", env.Status)
	require.NotEmpty(t, env.Person.ID)
	return env.Person.ID
}

func TestGenealogyRoutesEndToEnd(t *testing.T) {
	r := newTestRouter(t, graph.NewMemoryStore())

	mom := addPerson(t, r, "Anna", "female")
	dad := addPerson(t, r, "Jan", "male")
	kid := addPerson(t, r, "Ola", "female")

	code, env := do(t, r, http.MethodPost, "/genealogy/addMarriageRelationship", map[string]any{
		"spouse1Id": mom, "spouse2Id": json.Number(dad),
	})
	require.Equal(t, http.StatusOK, code, env.Message)
	require.Len(t, env.Spouses, 1)
	assert.Equal(t, "Anna", env.Spouses[0].Spouse1.Name)

	code, env = do(t, r, http.MethodPost, "/genealogy/addParentChildRelationship", map[string]any{
		"motherId": mom, "fatherId": dad, "childId": kid,
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Parent-child relationship added.", env.Message)

	code, env = do(t, r, http.MethodGet, "/genealogy/getAllPeople", nil)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, env.People, 3)

	code, env = do(t, r, http.MethodGet, "/genealogy/getAllMales", nil)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, env.Males, 1)
	assert.Equal(t, dad, env.Males[0].ID)

	code, env = do(t, r, http.MethodGet, "/genealogy/getAllFemales", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, env.Females, 2)

	code, env = do(t, r, http.MethodGet, "/genealogy/getMarriedPeople", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, env.MarriedPeople, 2)

	code, env = do(t, r, http.MethodGet, "/genealogy/getUnmarriedPeople", nil)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, env.UnmarriedPeople, 1)
	assert.Equal(t, kid, env.UnmarriedPeople[0].ID)

	code, env = do(t, r, http.MethodGet, "/genealogy/getPerson/"+mom, nil)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, env.Person.Marriages, 1)
	assert.Equal(t, kid, env.Person.Marriages[0].SharedChildren[0].ID)

	code, env = do(t, r, http.MethodDelete, "/genealogy/deleteMarriage/"+dad+"/"+mom, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Marriage relationship deleted successfully.", env.Message)
	assert.Equal(t, dad, env.DeletedMarriage.Spouse1ID.String())
	assert.Equal(t, mom, env.DeletedMarriage.Spouse2ID.String())

	code, env = do(t, r, http.MethodDelete, "/genealogy/deleteMarriage/"+dad+"/"+mom, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "Marriage relationship not found.", env.Message)

	code, env = do(t, r, http.MethodDelete, "/genealogy/deletePerson/"+kid, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Person deleted successfully.", env.Message)

	code, _ = do(t, r, http.MethodDelete, "/genealogy/deletePerson/"+kid, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGenealogyRoutesRejectBadInput(t *testing.T) {
	r := newTestRouter(t, graph.NewMemoryStore())
	a := addPerson(t, r, "A", "male")

	cases := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"missing name", http.MethodPost, "/genealogy/addPerson", map[string]string{"gender": "male"}},
		{"bad gender", http.MethodPost, "/genealogy/addPerson", map[string]string{"name": "X", "gender": "other"}},
		{"non-numeric id in path", http.MethodDelete, "/genealogy/deletePerson/abc", nil},
		{"non-numeric spouse", http.MethodDelete, "/genealogy/deleteMarriage/1/x", nil},
		{"missing child id", http.MethodPost, "/genealogy/addParentChildRelationship", map[string]any{"motherId": 1, "fatherId": 2}},
		{"garbage id in body", http.MethodPost, "/genealogy/addMarriageRelationship", map[string]any{"spouse1Id": "one", "spouse2Id": 2}},
		{"self marriage", http.MethodPost, "/genealogy/addMarriageRelationship", map[string]any{"spouse1Id": a, "spouse2Id": a}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, env := do(t, r, tc.method, tc.path, tc.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, "error", env.Status)
			assert.NotEmpty(t, env.Message)
		})
	}

	code, env := do(t, r, http.MethodPost, "/genealogy/addParentChildRelationship", map[string]any{
		"motherId": 100, "fatherId": 101, "childId": a,
	})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "not_found", env.Code)
}

type brokenStore struct {
	graph.Store
}

func (brokenStore) AllPeople(context.Context) ([]graph.FamilyRow, error) {
	return nil, errors.New("neo4j: connection reset by peer")
}

func (brokenStore) Ping(context.Context) error { return errors.New("down") }

func TestStoreFailureHidesDriverError(t *testing.T) {
	r := newTestRouter(t, brokenStore{})

	req := httptest.NewRequest(http.MethodGet, "/genealogy/getAllPeople", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "Error retrieving people from the genealogy tree.", env.Message)
	assert.Equal(t, "store_failure", env.Code)

	code, _ := do(t, r, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	r := newTestRouter(t, graph.NewMemoryStore())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	code, env := do(t, r, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", env.Status)

	do(t, r, http.MethodGet, "/genealogy/getAllPeople", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `genealogy_view_cache_lookups_total{result="miss",view="people"} 1`)
}
