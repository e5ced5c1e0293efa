package categories

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lankamart/storefront/models"
)

// --- Mock Repository ---

type MockCategoryRepo struct {
	Categories  []models.Category
	Err         error
	LastSaved   *models.Category
	LastDeleted string
}

func (m *MockCategoryRepo) GetAllCategories() []models.Category {
	return m.Categories
}

func (m *MockCategoryRepo) CreateCategory(_ context.Context, cat *models.Category) error {
	m.LastSaved = cat
	if m.Err != nil {
		return m.Err
	}
	cat.ID = "cat-new"
	return nil
}

func (m *MockCategoryRepo) UpdateCategory(_ context.Context, cat models.Category) error {
	m.LastSaved = &cat
	if m.Err != nil {
		return m.Err
	}
	if !m.has(cat.ID) {
		return models.ErrCategoryNotFound
	}
	return nil
}

func (m *MockCategoryRepo) DeleteCategory(_ context.Context, id string) error {
	m.LastDeleted = id
	if m.Err != nil {
		return m.Err
	}
	if !m.has(id) {
		return models.ErrCategoryNotFound
	}
	return nil
}

func (m *MockCategoryRepo) has(id string) bool {
	return slices.ContainsFunc(m.Categories, func(c models.Category) bool { return c.ID == id })
}

func seafood() models.Category {
	return models.Category{
		ID:    "cat-seafood",
		Name:  models.LocalizedString{VI: "Hải Sản", EN: "Seafood", ZH: "海鲜"},
		Icon:  "fish",
		Color: "#0ea5e9",
	}
}

// --- Tests: GET /categories ---

func TestHandleGetAll(t *testing.T) {
	testCases := []struct {
		name               string
		mockRepoSetup      func() *MockCategoryRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "Success with multiple categories",
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{
					Categories: []models.Category{
						seafood(),
						{ID: "cat-drinks", Name: models.Same("Đồ uống")},
					},
				}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp []models.Category
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Len(t, resp, 2)
				assert.Equal(t, "cat-seafood", resp[0].ID)
				assert.Equal(t, "Seafood", resp[0].Name.EN)
				assert.Equal(t, "Đồ uống", resp[1].Name.VI)
			},
		},
		{
			name: "Success with empty list",
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{
					Categories: []models.Category{},
				}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp []models.Category
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Len(t, resp, 0)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := tc.mockRepoSetup()
			handler := NewCategoryHandler(mockRepo)
			req := httptest.NewRequest("GET", "/categories", nil)
			rec := httptest.NewRecorder()

			// Act
			handler.HandleGetAll(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}

// --- Tests: POST /categories ---

func TestHandleCreate(t *testing.T) {
	testCases := []struct {
		name               string
		requestBody        string
		mockRepoSetup      func() *MockCategoryRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkRepoCall      func(t *testing.T, repo *MockCategoryRepo)
	}{
		{
			name:        "Success",
			requestBody: `{"name":{"vi":"Gia vị","en":"Spices","zh":"香料"},"icon":"leaf","color":"#16a34a"}`,
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{}
			},
			expectedStatusCode: http.StatusCreated,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp models.Category
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, "cat-new", resp.ID)
			},
			checkRepoCall: func(t *testing.T, repo *MockCategoryRepo) {
				assert.NotNil(t, repo.LastSaved)
				assert.Equal(t, "Gia vị", repo.LastSaved.Name.VI)
				assert.Equal(t, "#16a34a", repo.LastSaved.Color)
			},
		},
		{
			name:        "Invalid JSON body",
			requestBody: `{invalid json`,
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "Invalid JSON body", errResp["error"])
			},
			checkRepoCall: func(t *testing.T, repo *MockCategoryRepo) {
				assert.Nil(t, repo.LastSaved, "CreateCategory should not be called with invalid JSON")
			},
		},
		{
			name:        "Missing Vietnamese name",
			requestBody: `{"name":{"en":"Spices"}}`,
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "Missing Vietnamese name", errResp["error"])
			},
			checkRepoCall: func(t *testing.T, repo *MockCategoryRepo) {
				assert.Nil(t, repo.LastSaved, "CreateCategory should not be called with missing fields")
			},
		},
		{
			name:        "Repository error on create",
			requestBody: `{"name":{"vi":"Đồ chơi"}}`,
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{Err: errors.New("insert failed")}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "Failed to create category", errResp["error"])
			},
			checkRepoCall: func(t *testing.T, repo *MockCategoryRepo) {
				assert.NotNil(t, repo.LastSaved, "CreateCategory should have been called")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := tc.mockRepoSetup()
			handler := NewCategoryHandler(mockRepo)
			req := httptest.NewRequest("POST", "/categories", strings.NewReader(tc.requestBody))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			// Act
			handler.HandleCreate(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)

			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}

			if tc.checkRepoCall != nil {
				tc.checkRepoCall(t, mockRepo)
			}
		})
	}
}

// --- Tests: PUT and DELETE /categories/{id} ---

func TestHandleUpdate(t *testing.T) {
	testCases := []struct {
		name               string
		id                 string
		requestBody        string
		repo               *MockCategoryRepo
		expectedStatusCode int
	}{
		{name: "Rename", id: "cat-seafood", requestBody: `{"name":{"vi":"Hải Sản Tươi"}}`, repo: &MockCategoryRepo{Categories: []models.Category{seafood()}}, expectedStatusCode: http.StatusOK},
		{name: "Unknown category", id: "cat-none", requestBody: `{"name":{"vi":"X"}}`, repo: &MockCategoryRepo{Categories: []models.Category{seafood()}}, expectedStatusCode: http.StatusNotFound},
		{name: "Missing name", id: "cat-seafood", requestBody: `{}`, repo: &MockCategoryRepo{Categories: []models.Category{seafood()}}, expectedStatusCode: http.StatusBadRequest},
		{name: "Storage failure", id: "cat-seafood", requestBody: `{"name":{"vi":"X"}}`, repo: &MockCategoryRepo{Err: errors.New("disk full")}, expectedStatusCode: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewCategoryHandler(tc.repo)
			req := httptest.NewRequest("PUT", "/categories/"+tc.id, strings.NewReader(tc.requestBody))
			req.SetPathValue("id", tc.id)
			rec := httptest.NewRecorder()

			handler.HandleUpdate(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.expectedStatusCode == http.StatusOK {
				assert.Equal(t, tc.id, tc.repo.LastSaved.ID)
			}
		})
	}
}

func TestHandleDelete(t *testing.T) {
	repo := &MockCategoryRepo{Categories: []models.Category{seafood()}}
	handler := NewCategoryHandler(repo)

	for id, want := range map[string]int{"cat-seafood": http.StatusNoContent, "cat-none": http.StatusNotFound} {
		req := httptest.NewRequest("DELETE", "/categories/"+id, nil)
		req.SetPathValue("id", id)
		rec := httptest.NewRecorder()

		handler.HandleDelete(rec, req)

		assert.Equal(t, want, rec.Code, id)
		assert.Equal(t, id, repo.LastDeleted)
	}
}
