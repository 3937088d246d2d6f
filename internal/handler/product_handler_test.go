package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"product-api/internal/model"
	"product-api/internal/validation"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, payload map[string]any) (*model.Product, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id int64, payload map[string]any) (*model.Product, error) {
	args := m.Called(ctx, id, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func testProduct() *model.Product {
	return &model.Product{ID: 1, Name: "Widget", Price: decimal.RequireFromString("9.99"), Stock: 5}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestProductHandler_List(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		mockReturn     []model.Product
		mockError      error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success",
			mockReturn:     []model.Product{*testProduct()},
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"id":1,"name":"Widget","price":9.99,"stock":5}]`,
		},
		{
			name:           "Empty list",
			mockReturn:     []model.Product{},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name:           "Service error",
			mockError:      model.NewStoreError(errors.New("database error")),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"message":"Server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			handler := NewProductHandler(mockService, logger)

			mockService.On("List", mock.Anything).Return(tt.mockReturn, tt.mockError)

			req := httptest.NewRequest(http.MethodGet, "/products", nil)
			w := httptest.NewRecorder()

			handler.List(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}

func TestProductHandler_GetByID(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name            string
		query           string
		mockReturn      *model.Product
		mockError       error
		expectService   bool
		productID       int64
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:           "Success",
			query:          "?id=1",
			mockReturn:     testProduct(),
			expectService:  true,
			productID:      1,
			expectedStatus: http.StatusOK,
		},
		{
			name:            "Product not found",
			query:           "?id=99999",
			mockError:       model.ErrProductNotFound,
			expectService:   true,
			productID:       99999,
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "Product not found",
		},
		{
			name:            "Non-integer id",
			query:           "?id=abc",
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Invalid id",
		},
		{
			name:            "Trailing garbage in id",
			query:           "?id=12abc",
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Invalid id",
		},
		{
			name:            "Missing id",
			query:           "",
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Invalid id",
		},
		{
			name:            "Store failure",
			query:           "?id=1",
			mockError:       model.NewStoreError(errors.New("connection refused")),
			expectService:   true,
			productID:       1,
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			handler := NewProductHandler(mockService, logger)

			if tt.expectService {
				mockService.On("GetByID", mock.Anything, tt.productID).
					Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodGet, "/products"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.GetByID(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedMessage != "" {
				resp := decodeError(t, w)
				assert.Equal(t, tt.expectedMessage, resp.Message)
				assert.Empty(t, resp.Errors)
				assert.NotContains(t, w.Body.String(), "connection refused")
			} else {
				var p model.Product
				require.NoError(t, json.NewDecoder(w.Body).Decode(&p))
				assert.Equal(t, int64(1), p.ID)
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestProductHandler_Create(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name            string
		body            string
		expectService   bool
		expectedPayload map[string]any
		mockReturn      *model.Product
		mockError       error
		expectedStatus  int
		expectedBody    string
	}{
		{
			name:            "Success",
			body:            `{"name":" Widget ","price":"9.99","stock":"5"}`,
			expectService:   true,
			expectedPayload: map[string]any{"name": " Widget ", "price": "9.99", "stock": "5"},
			mockReturn:      testProduct(),
			expectedStatus:  http.StatusCreated,
			expectedBody:    `{"id":1,"name":"Widget","price":9.99,"stock":5}`,
		},
		{
			name:            "Numbers are passed as literal text",
			body:            `{"name":"Widget","price":9.99,"stock":5}`,
			expectService:   true,
			expectedPayload: map[string]any{"name": "Widget", "price": json.Number("9.99"), "stock": json.Number("5")},
			mockReturn:      testProduct(),
			expectedStatus:  http.StatusCreated,
			expectedBody:    `{"id":1,"name":"Widget","price":9.99,"stock":5}`,
		},
		{
			name:            "Empty body is an empty payload",
			body:            "",
			expectService:   true,
			expectedPayload: map[string]any{},
			mockError: model.NewValidationError([]string{
				validation.MsgNameRequired, validation.MsgPriceInvalid, validation.MsgStockInvalid,
			}),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Validation failed","errors":["PRODUCTNAME is required.","PRICE must be a positive number.","STOCK must be 0 or positive integer."]}`,
		},
		{
			name:           "Malformed JSON",
			body:           `{"name":`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Invalid request body"}`,
		},
		{
			name:           "JSON array body",
			body:           `[1,2,3]`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Invalid request body"}`,
		},
		{
			name:           "JSON null body",
			body:           `null`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Invalid request body"}`,
		},
		{
			name:            "Store failure",
			body:            `{"name":"Widget","price":"9.99","stock":"5"}`,
			expectService:   true,
			expectedPayload: map[string]any{"name": "Widget", "price": "9.99", "stock": "5"},
			mockError:       model.NewStoreError(errors.New("insert failed")),
			expectedStatus:  http.StatusInternalServerError,
			expectedBody:    `{"message":"Server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			handler := NewProductHandler(mockService, logger)

			if tt.expectService {
				mockService.On("Create", mock.Anything, tt.expectedPayload).
					Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Create(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}

func TestProductHandler_Create_BodyTooLarge(t *testing.T) {
	mockService := new(MockProductService)
	handler := NewProductHandler(mockService, zerolog.Nop())

	body := `{"name":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", decodeError(t, w).Message)
	mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductHandler_Update(t *testing.T) {
	logger := zerolog.Nop()
	payload := map[string]any{"name": "Widget", "price": "9.99", "stock": "5"}

	tests := []struct {
		name            string
		query           string
		body            string
		expectService   bool
		mockReturn      *model.Product
		mockError       error
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:           "Success",
			query:          "?id=1",
			body:           `{"name":"Widget","price":"9.99","stock":"5"}`,
			expectService:  true,
			mockReturn:     testProduct(),
			expectedStatus: http.StatusOK,
		},
		{
			name:            "Invalid id",
			query:           "?id=abc",
			body:            `{"name":"Widget","price":"9.99","stock":"5"}`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Invalid id",
		},
		{
			name:            "Invalid id checked before body",
			query:           "?id=abc",
			body:            `not json`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Invalid id",
		},
		{
			name:            "Product not found",
			query:           "?id=1",
			body:            `{"name":"Widget","price":"9.99","stock":"5"}`,
			expectService:   true,
			mockError:       model.ErrProductNotFound,
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "Product not found",
		},
		{
			name:            "Validation failure",
			query:           "?id=1",
			body:            `{"name":"Widget","price":"9.99","stock":"5"}`,
			expectService:   true,
			mockError:       model.NewValidationError([]string{validation.MsgStockInvalid}),
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			handler := NewProductHandler(mockService, logger)

			if tt.expectService {
				mockService.On("Update", mock.Anything, int64(1), payload).
					Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPut, "/products"+tt.query, strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.Update(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedMessage != "" {
				assert.Equal(t, tt.expectedMessage, decodeError(t, w).Message)
			} else {
				assert.JSONEq(t, `{"id":1,"name":"Widget","price":9.99,"stock":5}`, w.Body.String())
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestProductHandler_Delete(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		query          string
		expectService  bool
		mockReturn     *model.Product
		mockError      error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success",
			query:          "?id=1",
			expectService:  true,
			mockReturn:     testProduct(),
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"Deleted successfully"}`,
		},
		{
			name:           "Product not found",
			query:          "?id=1",
			expectService:  true,
			mockError:      model.ErrProductNotFound,
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"message":"Product not found"}`,
		},
		{
			name:           "Invalid id",
			query:          "?id=",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Invalid id"}`,
		},
		{
			name:           "Unclassified error is a server error",
			query:          "?id=1",
			expectService:  true,
			mockError:      errors.New("unexpected"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"message":"Server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			handler := NewProductHandler(mockService, logger)

			if tt.expectService {
				mockService.On("Delete", mock.Anything, int64(1)).
					Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodDelete, "/products"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.Delete(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		query    string
		expectOK bool
		expected int64
	}{
		{query: "?id=42", expectOK: true, expected: 42},
		{query: "?id=%2042%20", expectOK: true, expected: 42},
		{query: "?id=-1", expectOK: true, expected: -1},
		{query: "?id=abc", expectOK: false},
		{query: "?id=1.5", expectOK: false},
		{query: "?id=99999999999999999999", expectOK: false},
		{query: "", expectOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/products"+tt.query, nil)

			id, err := parseID(req)

			if tt.expectOK {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, id)
			} else {
				assert.ErrorIs(t, err, model.ErrInvalidID)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	t.Run("Encodes the payload", func(t *testing.T) {
		var logs bytes.Buffer
		w := httptest.NewRecorder()

		writeJSON(w, http.StatusCreated, model.MessageResponse{Message: "ok"}, zerolog.New(&logs))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"message":"ok"}`, w.Body.String())
		assert.Zero(t, logs.Len())
	})

	t.Run("Encode failure is logged", func(t *testing.T) {
		var logs bytes.Buffer
		w := httptest.NewRecorder()

		writeJSON(w, http.StatusOK, map[string]interface{}{"bad": make(chan int)}, zerolog.New(&logs))

		assert.Equal(t, http.StatusOK, w.Code)

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
		assert.Equal(t, "error", entry["level"])
		assert.Equal(t, "failed to encode response", entry["message"])
		assert.Equal(t, float64(http.StatusOK), entry["status"])
		assert.Contains(t, entry["error"], "unsupported type")
	})
}
