package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"devapi/internal/model"
	"devapi/internal/service"
	serviceMocks "devapi/internal/service/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zerolog.Nop())})
}

func decodeError(t *testing.T, body io.Reader) errorPayload {
	t.Helper()
	var res errorPayload
	require.NoError(t, json.NewDecoder(body).Decode(&res))
	return res
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := newTestApp()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp.Body).Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := newTestApp()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "developers_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	app := newTestApp()
	app.Get("/metrics", Metrics(reg))

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "developers_test_total 1")
}

func TestListDevelopers(t *testing.T) {
	mockSvc := new(serviceMocks.MockDeveloperService)
	app := newTestApp()
	app.Get("/developers", ListDevelopers(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("List", mock.Anything).Return([]model.Developer{
			{ID: 1, Name: strPtr("Ada"), FavLang: strPtr("Rust")},
			{ID: 2, Name: strPtr("Grace"), FavLang: strPtr("Go")},
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/developers", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON)

		body, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, `[{"name":"Ada","fav_lang":"Rust"},{"name":"Grace","fav_lang":"Go"}]`, string(body))
		mockSvc.AssertExpectations(t)
	})

	t.Run("empty", func(t *testing.T) {
		mockSvc.On("List", mock.Anything).Return([]model.Developer{}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/developers", nil))

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "[]", string(body))
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything).Return(nil, errors.New("service error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/developers", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "INTERNAL_ERROR", decodeError(t, resp.Body).Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestCreateDeveloper(t *testing.T) {
	mockSvc := new(serviceMocks.MockDeveloperService)
	app := newTestApp()
	app.Post("/developers", CreateDeveloper(mockSvc))

	tests := []struct {
		name        string
		contentType string
		body        string
		wantInput   service.DeveloperInput
	}{
		{
			name:        "json body",
			contentType: fiber.MIMEApplicationJSON,
			body:        `{"name":"Ada","fav_lang":"Rust"}`,
			wantInput:   service.DeveloperInput{Name: strPtr("Ada"), FavLang: strPtr("Rust")},
		},
		{
			name:        "form body",
			contentType: fiber.MIMEApplicationForm,
			body:        "name=Ada&fav_lang=Rust",
			wantInput:   service.DeveloperInput{Name: strPtr("Ada"), FavLang: strPtr("Rust")},
		},
		{
			name:        "missing field is null",
			contentType: fiber.MIMEApplicationJSON,
			body:        `{"name":"Ada"}`,
			wantInput:   service.DeveloperInput{Name: strPtr("Ada")},
		},
		{
			name:        "empty body",
			contentType: "",
			body:        "",
			wantInput:   service.DeveloperInput{},
		},
		{
			name:        "malformed body",
			contentType: fiber.MIMEApplicationJSON,
			body:        `{"name":`,
			wantInput:   service.DeveloperInput{},
		},
		{
			name:        "non string field is null, valid field is kept",
			contentType: fiber.MIMEApplicationJSON,
			body:        `{"name":"Bob","fav_lang":5}`,
			wantInput:   service.DeveloperInput{Name: strPtr("Bob")},
		},
		{
			name:        "explicit null and object fields",
			contentType: fiber.MIMEApplicationJSON,
			body:        `{"name":null,"fav_lang":{"primary":"Go"}}`,
			wantInput:   service.DeveloperInput{},
		},
		{
			name:        "json array body",
			contentType: fiber.MIMEApplicationJSON,
			body:        `["Bob","Go"]`,
			wantInput:   service.DeveloperInput{},
		},
		{
			name:        "empty string is kept",
			contentType: fiber.MIMEApplicationJSON + "; charset=utf-8",
			body:        `{"name":"","fav_lang":"Go"}`,
			wantInput:   service.DeveloperInput{Name: strPtr(""), FavLang: strPtr("Go")},
		},
		{
			name:        "form with one field",
			contentType: fiber.MIMEApplicationForm,
			body:        "fav_lang=Zig",
			wantInput:   service.DeveloperInput{FavLang: strPtr("Zig")},
		},
		{
			name:        "unsupported content type",
			contentType: fiber.MIMETextPlain,
			body:        "name=Bob",
			wantInput:   service.DeveloperInput{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc.On("Create", mock.Anything, tt.wantInput).Return(&model.Developer{ID: 1}, nil).Once()

			req := httptest.NewRequest(http.MethodPost, "/developers", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set(fiber.HeaderContentType, tt.contentType)
			}
			resp, _ := app.Test(req)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.JSONEq(t, `{"message":"Resource created"}`, string(body))
			mockSvc.AssertExpectations(t)
		})
	}

	t.Run("multipart body", func(t *testing.T) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		require.NoError(t, w.WriteField("name", "Ada"))
		require.NoError(t, w.WriteField("fav_lang", "OCaml"))
		require.NoError(t, w.Close())

		want := service.DeveloperInput{Name: strPtr("Ada"), FavLang: strPtr("OCaml")}
		mockSvc.On("Create", mock.Anything, want).Return(&model.Developer{ID: 1}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/developers", &buf)
		req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("insert failed")).Once()

		req := httptest.NewRequest(http.MethodPost, "/developers", strings.NewReader(`{"name":"Ada"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestGetDeveloper(t *testing.T) {
	mockSvc := new(serviceMocks.MockDeveloperService)
	app := newTestApp()
	app.Get("/developers/:id", GetDeveloper(mockSvc))

	t.Run("success returns the raw record", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(1)).
			Return(&model.Developer{ID: 1, Name: strPtr("Ada"), FavLang: strPtr("Rust")}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/developers/1", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, float64(1), result["id"])
		assert.Equal(t, "Ada", result["name"])
		assert.Equal(t, "Rust", result["fav_lang"])
		assert.Contains(t, result, "created_at")
		assert.Contains(t, result, "updated_at")
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(2)).Return(nil, service.ErrNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/developers/2", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp.Body).Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("non numeric id", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/developers/abc", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp.Body).Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(3)).Return(nil, errors.New("db error")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/developers/3", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestUpdateDeveloper(t *testing.T) {
	mockSvc := new(serviceMocks.MockDeveloperService)
	app := newTestApp()
	app.Put("/developers/:id", UpdateDeveloper(mockSvc))
	app.Patch("/developers/:id", UpdateDeveloper(mockSvc))

	for _, method := range []string{http.MethodPut, http.MethodPatch} {
		t.Run(method+" success", func(t *testing.T) {
			in := service.DeveloperInput{Name: strPtr("Grace"), FavLang: strPtr("Go")}
			mockSvc.On("Update", mock.Anything, int64(1), in).Return(&model.Developer{ID: 1}, nil).Once()

			req := httptest.NewRequest(method, "/developers/1", strings.NewReader(`{"name":"Grace","fav_lang":"Go"}`))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			resp, _ := app.Test(req)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.JSONEq(t, `{"message":"Resource updated"}`, string(body))
			mockSvc.AssertExpectations(t)
		})
	}

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, int64(9), mock.Anything).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodPut, "/developers/9", strings.NewReader(`{"name":"Grace"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp.Body).Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id never reaches the service", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodPut, "/developers/0", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertNotCalled(t, "Update", mock.Anything, int64(0), mock.Anything)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, int64(4), mock.Anything).Return(nil, errors.New("db error")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodPut, "/developers/4", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestDeleteDeveloper(t *testing.T) {
	mockSvc := new(serviceMocks.MockDeveloperService)
	app := newTestApp()
	app.Delete("/developers/:id", DeleteDeveloper(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, int64(1)).Return(nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/developers/1", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, `{"message":"Resource deleted"}`, string(body))
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, int64(2)).Return(service.ErrNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/developers/2", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp.Body).Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, int64(3)).Return(errors.New("delete error")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/developers/3", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestExportDevelopers(t *testing.T) {
	mockSvc := new(serviceMocks.MockSnapshotService)
	app := newTestApp()
	app.Post("/exports/developers", ExportDevelopers(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Export", mock.Anything).
			Return(&service.SnapshotResult{Key: "snapshots/x.json", URL: "https://example.test/x", Count: 3}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/exports/developers", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var res service.SnapshotResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
		assert.Equal(t, 3, res.Count)
		assert.Equal(t, "https://example.test/x", res.URL)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Export", mock.Anything).Return(nil, errors.New("storage down")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/exports/developers", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestRouting(t *testing.T) {
	app := newTestApp()

	mockSvc := new(serviceMocks.MockDeveloperService)
	RegisterRoutes(app, nil, mockSvc, nil)

	t.Run("not found route", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/non-existent", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp.Body).Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/health", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, resp.Body).Error.Code)
	})

	t.Run("export route is not mounted without storage", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/exports/developers", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
