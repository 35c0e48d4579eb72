package endpoint

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ariebrainware/hospital-patient-manager/config"
	"github.com/ariebrainware/hospital-patient-manager/manager"
	"github.com/ariebrainware/hospital-patient-manager/model"
	"github.com/ariebrainware/hospital-patient-manager/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type requestSpec struct {
	method       string
	registerPath string
	requestPath  string
	handler      gin.HandlerFunc
	body         interface{}
	headers      map[string]string
}

func performRequest(r *gin.Engine, spec requestSpec) (*httptest.ResponseRecorder, map[string]interface{}, error) {
	var reader *strings.Reader
	setJSONHeader := false
	switch v := spec.body.(type) {
	case nil:
		reader = strings.NewReader("")
	case string:
		reader = strings.NewReader(v)
		setJSONHeader = true
	default:
		b, _ := json.Marshal(spec.body)
		reader = strings.NewReader(string(b))
		setJSONHeader = true
	}

	req := httptest.NewRequest(spec.method, spec.requestPath, reader)
	if setJSONHeader {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range spec.headers {
		req.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var response map[string]interface{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			return w, nil, err
		}
	}
	return w, response, nil
}

func doRequestWithHandler(r *gin.Engine, spec requestSpec) (*httptest.ResponseRecorder, map[string]interface{}, error) {
	switch spec.method {
	case http.MethodGet:
		r.GET(spec.registerPath, spec.handler)
	case http.MethodPost:
		r.POST(spec.registerPath, spec.handler)
	case http.MethodPatch:
		r.PATCH(spec.registerPath, spec.handler)
	case http.MethodDelete:
		r.DELETE(spec.registerPath, spec.handler)
	default:
		r.Handle(spec.method, spec.registerPath, spec.handler)
	}
	return performRequest(r, spec)
}

// setupEndpointTest returns a router over a fresh JSON-backed manager.
func setupEndpointTest(t *testing.T) (*gin.Engine, *manager.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m := manager.New(storage.NewJSONStorage(filepath.Join(t.TempDir(), "patients.json"), nil))
	cfg := &config.Config{AppName: "Ward Test", RateLimit: 1000}
	return SetupRouter(m, cfg), m
}

func seedPatient(t *testing.T, m *manager.Manager, name, condition, admitted string) *model.Patient {
	t.Helper()
	p, err := m.CreatePatient(name, "45", model.GenderFemale, condition, model.MustParseDate(admitted))
	require.NoError(t, err)
	return p
}

func call(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	w, response, err := performRequest(r, requestSpec{method: method, requestPath: path, body: body})
	require.NoError(t, err)
	return w, response
}

// assertSuccessResponse asserts that the response indicates success with the expected status
func assertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, status int, response map[string]interface{}) {
	t.Helper()
	assert.Equal(t, status, w.Code, w.Body.String())
	if response == nil {
		return
	}
	assert.Equal(t, true, response["success"])
}

func assertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, status int, response map[string]interface{}) {
	t.Helper()
	assert.Equal(t, status, w.Code, w.Body.String())
	if response == nil {
		t.Fatalf("expected a JSON error body")
	}
	assert.Equal(t, false, response["success"])
	assert.NotEmpty(t, response["error"])
}

func dataOf(t *testing.T, response map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := response["data"].(map[string]interface{})
	require.True(t, ok, "data is %T", response["data"])
	return data
}
