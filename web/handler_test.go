package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/xiuxian-wiki/encyclopedia/apiclient"
	"github.com/xiuxian-wiki/encyclopedia/i18n"
	"github.com/xiuxian-wiki/encyclopedia/models"
)

// --- Mock Reader ---

type MockReader struct {
	Records []models.Record
	Err     error
}

func (m *MockReader) Categories(ctx context.Context) ([]apiclient.CategorySummary, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []apiclient.CategorySummary
	for _, c := range models.Categories {
		info := c.Info()
		out = append(out, apiclient.CategorySummary{Key: string(c), Name: info.Name, ChineseName: info.ChineseName, Description: info.Description, Icon: info.Icon, Count: int64(len(m.Records))})
	}
	return out, nil
}

func (m *MockReader) List(ctx context.Context, c models.Category) ([]models.Record, error) {
	return m.Records, m.Err
}

func (m *MockReader) Get(ctx context.Context, c models.Category, id string) (models.Record, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, rec := range m.Records {
		if rec.Base().ID == id {
			return rec, nil
		}
	}
	return nil, &apiclient.APIError{Status: http.StatusNotFound, Message: "Technique not found"}
}

// --- Helpers ---

func newTechnique(id, name, grade string) *models.Technique {
	tech := &models.Technique{Type: "剑法", Grade: grade, Effects: "剑气纵横\n一剑破万法", Description: name + "的描述"}
	tech.ID = id
	tech.Name = name
	return tech
}

func serve(t *testing.T, reader *MockReader, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	h, err := NewHandler(reader, language.Chinese, zap.NewNop())
	require.NoError(t, err)
	mux := http.NewServeMux()
	h.Register(mux)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

// --- Tests ---

func TestHandleHome(t *testing.T) {
	testCases := []struct {
		name         string
		reader       *MockReader
		lang         string
		expectedCode int
		expectedBody []string
	}{
		{
			name:         "chinese grid",
			reader:       &MockReader{Records: []models.Record{newTechnique("a", "太虚剑诀", "天阶")}},
			expectedCode: http.StatusOK,
			expectedBody: []string{"修仙百科", "灵根", "Spiritual Roots", "1 条记录", `href="/category/formations"`},
		},
		{
			name:         "english grid",
			reader:       &MockReader{},
			lang:         "en",
			expectedCode: http.StatusOK,
			expectedBody: []string{`<html lang="en">`, "Cultivation Encyclopedia", "0 records"},
		},
		{
			name:         "api failure",
			reader:       &MockReader{Err: errors.New("connection refused")},
			expectedCode: http.StatusBadGateway,
			expectedBody: []string{"加载失败，请稍后重试"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			target := "/"
			if tc.lang != "" {
				target += "?lang=" + tc.lang
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)

			// Act
			rec := serve(t, tc.reader, req)

			// Assert
			assert.Equal(t, tc.expectedCode, rec.Code)
			for _, want := range tc.expectedBody {
				assert.Contains(t, rec.Body.String(), want)
			}
		})
	}
}

func TestLanguageQueryIsPersisted(t *testing.T) {
	rec := serve(t, &MockReader{}, httptest.NewRequest(http.MethodGet, "/?lang=en", nil))

	cookie := rec.Result().Cookies()
	require.Len(t, cookie, 1)
	assert.Equal(t, i18n.LangCookieName, cookie[0].Name)
	assert.Equal(t, "en", cookie[0].Value)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: i18n.LangCookieName, Value: "en"})
	rec = serve(t, &MockReader{}, req)
	assert.Contains(t, rec.Body.String(), `<html lang="en">`)
	assert.Empty(t, rec.Result().Cookies())
}

func TestHandleCategory(t *testing.T) {
	reader := &MockReader{Records: []models.Record{
		newTechnique("a", "太虚剑诀", "天阶"),
		newTechnique("b", "青木诀", "玄阶"),
	}}

	testCases := []struct {
		name            string
		query           url.Values
		expectedBody    []string
		notExpectedBody []string
	}{
		{
			name:         "all records",
			expectedBody: []string{"功法", "找到 2 条功法记录", "太虚剑诀", "青木诀", `href="/category/techniques/a"`, `<select name="grade">`},
		},
		{
			name:            "search",
			query:           url.Values{"q": {"青木"}},
			expectedBody:    []string{"找到 1 条符合条件的功法记录", "青木诀"},
			notExpectedBody: []string{"太虚剑诀"},
		},
		{
			name:            "filter",
			query:           url.Values{"grade": {"天阶"}},
			expectedBody:    []string{"太虚剑诀", "筛选条件:"},
			notExpectedBody: []string{"青木诀"},
		},
		{
			name:         "no match",
			query:        url.Values{"q": {"不存在"}},
			expectedBody: []string{"找到 0 条符合条件的功法记录", "暂无功法信息"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			target := "/category/techniques"
			if tc.query != nil {
				target += "?" + tc.query.Encode()
			}

			rec := serve(t, reader, httptest.NewRequest(http.MethodGet, target, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			for _, want := range tc.expectedBody {
				assert.Contains(t, rec.Body.String(), want)
			}
			for _, unwanted := range tc.notExpectedBody {
				assert.NotContains(t, rec.Body.String(), unwanted)
			}
		})
	}
}

func TestHandleCategoryUnknown(t *testing.T) {
	rec := serve(t, &MockReader{}, httptest.NewRequest(http.MethodGet, "/category/dragons", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleItem(t *testing.T) {
	reader := &MockReader{Records: []models.Record{newTechnique("a", "太虚剑诀", "天阶")}}

	rec := serve(t, reader, httptest.NewRequest(http.MethodGet, "/category/techniques/a", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h1>太虚剑诀</h1>")
	assert.Contains(t, body, `<span class="badge">天阶</span>`)
	assert.Contains(t, body, "<p>一剑破万法</p>")
	assert.Contains(t, body, `href="/category/techniques"`)
	assert.NotContains(t, body, "<img")

	rec = serve(t, reader, httptest.NewRequest(http.MethodGet, "/category/techniques/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "未找到该条目")
}
