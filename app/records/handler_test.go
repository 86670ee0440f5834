package records

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/xiuxian-wiki/encyclopedia/apperr"
	"github.com/xiuxian-wiki/encyclopedia/models"
)

// --- Mock Repository ---

type MockRecordRepo struct {
	Records   []models.Record
	Err       error
	LastSaved models.Record
	DeletedID string
}

func (m *MockRecordRepo) GetAll(ctx context.Context, c models.Category) ([]models.Record, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Records, nil
}

func (m *MockRecordRepo) GetByID(ctx context.Context, c models.Category, id string) (models.Record, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, rec := range m.Records {
		if rec.Base().ID == id {
			return rec, nil
		}
	}
	return nil, models.ErrRecordNotFound
}

func (m *MockRecordRepo) Create(ctx context.Context, c models.Category, rec models.Record) error {
	m.LastSaved = rec
	if m.Err != nil {
		return m.Err
	}
	if err := models.PrepareRecord(rec); err != nil {
		return err
	}
	rec.Base().ID = "new-id"
	return nil
}

func (m *MockRecordRepo) Update(ctx context.Context, c models.Category, id string, apply func(models.Record) error) (models.Record, error) {
	rec, err := m.GetByID(ctx, c, id)
	if err != nil {
		return nil, err
	}
	if err := apply(rec); err != nil {
		return nil, err
	}
	rec.Base().ID = id
	if err := models.PrepareRecord(rec); err != nil {
		return nil, err
	}
	m.LastSaved = rec
	return rec, nil
}

func (m *MockRecordRepo) Delete(ctx context.Context, c models.Category, id string) error {
	if m.Err != nil {
		return m.Err
	}
	if _, err := m.GetByID(ctx, c, id); err != nil {
		return err
	}
	m.DeletedID = id
	return nil
}

type MockAuth struct {
	Err error
}

func (m *MockAuth) RequireAuth(r *http.Request) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return &models.User{ID: "user-1", Username: "admin", Role: models.RoleAdmin}, nil
}

// --- Helpers ---

func newTestRoot(id, name string) *models.SpiritualRoot {
	root := &models.SpiritualRoot{Type: "纯属性", Grade: "天品", Rarity: 10, Description: "极其罕见"}
	root.ID = id
	root.Name = name
	return root
}

func newTestRealm(id, name string, level int) *models.CultivationRealm {
	realm := &models.CultivationRealm{Level: level, Stage: "初期", Description: "修仙第一境界"}
	realm.ID = id
	realm.Name = name
	return realm
}

func newHandler(repo *MockRecordRepo, auth *MockAuth) (*RecordHandler, *http.ServeMux) {
	return newCategoryHandler(models.SpiritualRoots, repo, auth)
}

func newCategoryHandler(c models.Category, repo *MockRecordRepo, auth *MockAuth) (*RecordHandler, *http.ServeMux) {
	h := NewRecordHandler(c, c.RequiredFields(), repo, auth, zap.NewNop())
	mux := http.NewServeMux()
	h.Register(mux)
	return h, mux
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	var errResp map[string]string
	err := json.NewDecoder(rec.Body).Decode(&errResp)
	assert.NoError(t, err)
	return errResp["error"]
}

// --- Tests: GET /api/{category} ---

func TestHandleList(t *testing.T) {
	testCases := []struct {
		name               string
		repo               *MockRecordRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "Success with records",
			repo: &MockRecordRepo{Records: []models.Record{newTestRoot("1", "天灵根"), newTestRoot("2", "五行灵根")}},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp []map[string]any
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Len(t, resp, 2)
				assert.Equal(t, "天灵根", resp[0]["name"])
				assert.Equal(t, "纯属性", resp[0]["type"])
			},
		},
		{
			name:               "Empty list encodes as array",
			repo:               &MockRecordRepo{},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `[]`, rec.Body.String())
			},
		},
		{
			name:               "Repository error",
			repo:               &MockRecordRepo{Err: errors.New("db down")},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "Internal server error", decodeError(t, rec))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			_, mux := newHandler(tc.repo, &MockAuth{})
			req := httptest.NewRequest("GET", "/api/spiritualRoots", nil)
			rec := httptest.NewRecorder()

			// Act
			mux.ServeHTTP(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}

// --- Tests: POST /api/{category} ---

func TestHandleCreate(t *testing.T) {
	testCases := []struct {
		name               string
		requestBody        string
		auth               *MockAuth
		repo               *MockRecordRepo
		expectedStatusCode int
		expectedError      string
		checkRepoCall      func(t *testing.T, repo *MockRecordRepo)
	}{
		{
			name:               "Success",
			requestBody:        `{"name":"天灵根","type":"纯属性","grade":"天品","description":"极其罕见","rarity":10}`,
			auth:               &MockAuth{},
			repo:               &MockRecordRepo{},
			expectedStatusCode: http.StatusCreated,
			checkRepoCall: func(t *testing.T, repo *MockRecordRepo) {
				root, ok := repo.LastSaved.(*models.SpiritualRoot)
				assert.True(t, ok)
				assert.Equal(t, "天灵根", root.Name)
				assert.Equal(t, "天品", root.Grade)
				assert.Equal(t, 10, root.Rarity)
			},
		},
		{
			name:               "Client supplied id is ignored",
			requestBody:        `{"id":"mine","name":"天灵根","type":"纯属性","grade":"天品","description":"d"}`,
			auth:               &MockAuth{},
			repo:               &MockRecordRepo{},
			expectedStatusCode: http.StatusCreated,
			checkRepoCall: func(t *testing.T, repo *MockRecordRepo) {
				assert.Equal(t, "new-id", repo.LastSaved.Base().ID)
			},
		},
		{
			name:               "Unauthenticated",
			requestBody:        `{"name":"天灵根","type":"纯属性","grade":"天品","description":"d"}`,
			auth:               &MockAuth{Err: apperr.Unauthenticated},
			repo:               &MockRecordRepo{},
			expectedStatusCode: http.StatusUnauthorized,
			expectedError:      "Authentication required",
			checkRepoCall: func(t *testing.T, repo *MockRecordRepo) {
				assert.Nil(t, repo.LastSaved, "Create should not be called without a token")
			},
		},
		{
			name:               "Rarity sent as text",
			requestBody:        `{"name":"天灵根","type":"纯属性","grade":"天品","description":"d","rarity":"3"}`,
			auth:               &MockAuth{},
			repo:               &MockRecordRepo{},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Invalid rarity: must be a number",
			checkRepoCall: func(t *testing.T, repo *MockRecordRepo) {
				assert.Nil(t, repo.LastSaved)
			},
		},
		{
			name:               "Fractional rarity",
			requestBody:        `{"name":"天灵根","type":"纯属性","grade":"天品","description":"d","rarity":2.5}`,
			auth:               &MockAuth{},
			repo:               &MockRecordRepo{},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Invalid rarity: must be an integer",
		},
		{
			name:               "Missing required field",
			requestBody:        `{"name":"天灵根","type":"纯属性","description":"d"}`,
			auth:               &MockAuth{},
			repo:               &MockRecordRepo{},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Missing required field: grade",
			checkRepoCall: func(t *testing.T, repo *MockRecordRepo) {
				assert.Nil(t, repo.LastSaved)
			},
		},
		{
			name:               "Blank required field",
			requestBody:        `{"name":"   ","type":"纯属性","grade":"天品","description":"d"}`,
			auth:               &MockAuth{},
			repo:               &MockRecordRepo{},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Missing required field: name",
		},
		{
			name:               "Invalid JSON body",
			requestBody:        `{invalid json`,
			auth:               &MockAuth{},
			repo:               &MockRecordRepo{},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Invalid JSON body",
		},
		{
			name:               "Array body",
			requestBody:        `[{"name":"x"}]`,
			auth:               &MockAuth{},
			repo:               &MockRecordRepo{},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Invalid JSON body",
		},
		{
			name:               "Wrong field type",
			requestBody:        `{"name":"天灵根","type":"纯属性","grade":"天品","description":"d","rarity":"high"}`,
			auth:               &MockAuth{},
			repo:               &MockRecordRepo{},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Invalid JSON body",
		},
		{
			name:               "Invalid image URL",
			requestBody:        `{"name":"天灵根","type":"纯属性","grade":"天品","description":"d","imageUrl":"javascript:alert(1)"}`,
			auth:               &MockAuth{},
			repo:               &MockRecordRepo{},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Invalid imageUrl: must be an http or https URL",
		},
		{
			name:               "Repository error",
			requestBody:        `{"name":"天灵根","type":"纯属性","grade":"天品","description":"d"}`,
			auth:               &MockAuth{},
			repo:               &MockRecordRepo{Err: errors.New("insert failed")},
			expectedStatusCode: http.StatusInternalServerError,
			expectedError:      "Internal server error",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			_, mux := newHandler(tc.repo, tc.auth)
			req := httptest.NewRequest("POST", "/api/spiritualRoots", strings.NewReader(tc.requestBody))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			// Act
			mux.ServeHTTP(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.expectedError != "" {
				assert.Equal(t, tc.expectedError, decodeError(t, rec))
			}
			if tc.checkRepoCall != nil {
				tc.checkRepoCall(t, tc.repo)
			}
		})
	}
}

// --- Tests: GET /api/{category}/{id} ---

func TestHandleGet(t *testing.T) {
	repo := &MockRecordRepo{Records: []models.Record{newTestRoot("abc", "天灵根")}}
	_, mux := newHandler(repo, &MockAuth{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/spiritualRoots/abc", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	var resp models.SpiritualRoot
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "abc", resp.ID)
	assert.Equal(t, "天灵根", resp.Name)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/spiritualRoots/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "spiritualRoots not found", decodeError(t, rec))
}

// --- Tests: PUT /api/{category}/{id} ---

func TestHandleUpdate(t *testing.T) {
	testCases := []struct {
		name               string
		category           models.Category
		id                 string
		requestBody        string
		auth               *MockAuth
		expectedStatusCode int
		expectedError      string
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:               "Merges provided fields",
			id:                 "abc",
			requestBody:        `{"grade":"地品"}`,
			auth:               &MockAuth{},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp models.SpiritualRoot
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, "地品", resp.Grade)
				assert.Equal(t, "纯属性", resp.Type)
				assert.Equal(t, "天灵根", resp.Name)
			},
		},
		{
			name:               "Unauthenticated",
			id:                 "abc",
			requestBody:        `{"grade":"地品"}`,
			auth:               &MockAuth{Err: apperr.Unauthenticated},
			expectedStatusCode: http.StatusUnauthorized,
			expectedError:      "Authentication required",
		},
		{
			name:               "Not found",
			id:                 "missing",
			requestBody:        `{"grade":"地品"}`,
			auth:               &MockAuth{},
			expectedStatusCode: http.StatusNotFound,
			expectedError:      "spiritualRoots not found",
		},
		{
			name:               "Empty name is rejected",
			id:                 "abc",
			requestBody:        `{"name":""}`,
			auth:               &MockAuth{},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Missing required field: name",
		},
		{
			name:               "Rarity out of range",
			id:                 "abc",
			requestBody:        `{"rarity":42}`,
			auth:               &MockAuth{},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Invalid rarity: must be between 1 and 10",
		},
		{
			name:               "Rarity sent as text",
			id:                 "abc",
			requestBody:        `{"rarity":"high"}`,
			auth:               &MockAuth{},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Invalid rarity: must be a number",
		},
		{
			name:               "Realm level zero is rejected",
			category:           models.CultivationRealms,
			id:                 "realm",
			requestBody:        `{"level":0}`,
			auth:               &MockAuth{},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Invalid level: must be at least 1",
		},
		{
			name:               "Realm level negative is rejected",
			category:           models.CultivationRealms,
			id:                 "realm",
			requestBody:        `{"level":-2}`,
			auth:               &MockAuth{},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Invalid level: must be at least 1",
		},
		{
			name:               "Realm level raised",
			category:           models.CultivationRealms,
			id:                 "realm",
			requestBody:        `{"level":2}`,
			auth:               &MockAuth{},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp models.CultivationRealm
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, 2, resp.Level)
				assert.Equal(t, "炼气期", resp.Name)
			},
		},
		{
			name:               "Invalid JSON body",
			id:                 "abc",
			requestBody:        `nope`,
			auth:               &MockAuth{},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Invalid JSON body",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			category := tc.category
			if category == "" {
				category = models.SpiritualRoots
			}
			repo := &MockRecordRepo{Records: []models.Record{newTestRoot("abc", "天灵根"), newTestRealm("realm", "炼气期", 1)}}
			_, mux := newCategoryHandler(category, repo, tc.auth)
			req := httptest.NewRequest("PUT", "/api/"+string(category)+"/"+tc.id, strings.NewReader(tc.requestBody))
			rec := httptest.NewRecorder()

			// Act
			mux.ServeHTTP(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.expectedError != "" {
				assert.Equal(t, tc.expectedError, decodeError(t, rec))
			}
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}

// --- Tests: DELETE /api/{category}/{id} ---

func TestHandleDelete(t *testing.T) {
	testCases := []struct {
		name               string
		id                 string
		auth               *MockAuth
		repo               *MockRecordRepo
		expectedStatusCode int
		expectedDeletedID  string
	}{
		{
			name:               "Success",
			id:                 "abc",
			auth:               &MockAuth{},
			repo:               &MockRecordRepo{Records: []models.Record{newTestRoot("abc", "天灵根")}},
			expectedStatusCode: http.StatusOK,
			expectedDeletedID:  "abc",
		},
		{
			name:               "Unauthenticated",
			id:                 "abc",
			auth:               &MockAuth{Err: apperr.Unauthenticated},
			repo:               &MockRecordRepo{Records: []models.Record{newTestRoot("abc", "天灵根")}},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "Not found",
			id:                 "missing",
			auth:               &MockAuth{},
			repo:               &MockRecordRepo{},
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name:               "Repository error",
			id:                 "abc",
			auth:               &MockAuth{},
			repo:               &MockRecordRepo{Err: errors.New("db down")},
			expectedStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, mux := newHandler(tc.repo, tc.auth)
			rec := httptest.NewRecorder()

			mux.ServeHTTP(rec, httptest.NewRequest("DELETE", "/api/spiritualRoots/"+tc.id, nil))

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			assert.Equal(t, tc.expectedDeletedID, tc.repo.DeletedID)
			if tc.expectedStatusCode == http.StatusOK {
				assert.JSONEq(t, `{"success":true}`, rec.Body.String())
			}
		})
	}
}

func TestIsBlank(t *testing.T) {
	testCases := []struct {
		raw      string
		expected bool
	}{
		{"", true},
		{"null", true},
		{`""`, true},
		{`"  "`, true},
		{"0", true},
		{"false", true},
		{`"天品"`, false},
		{"3", false},
		{"true", false},
		{`{"a":1}`, false},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.expected, isBlank(json.RawMessage(tc.raw)))
		})
	}
}
