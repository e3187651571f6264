package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/staynest/staynest-backend/internal/model"
	"github.com/staynest/staynest-backend/internal/search"
	"github.com/staynest/staynest-backend/internal/service"
)

type stubPropertyService struct {
	created   int
	getResult *model.Property
	getErr    error
}

func (s *stubPropertyService) List(ctx context.Context) ([]model.Property, error) {
	return nil, nil
}

func (s *stubPropertyService) Search(ctx context.Context, f search.Filters) ([]model.Property, error) {
	return nil, nil
}

func (s *stubPropertyService) Get(ctx context.Context, id uint64) (*model.Property, error) {
	return s.getResult, s.getErr
}

func (s *stubPropertyService) ListByHost(ctx context.Context, hostUID string) ([]model.Property, error) {
	return nil, nil
}

func (s *stubPropertyService) Create(ctx context.Context, hostUID string, in service.PropertyInput) (*model.Property, error) {
	s.created++
	return &model.Property{ID: 1, HostUID: hostUID, Title: in.Title}, nil
}

func (s *stubPropertyService) Update(ctx context.Context, id uint64, hostUID string, in service.PropertyInput) (*model.Property, error) {
	return nil, nil
}

func (s *stubPropertyService) Delete(ctx context.Context, id uint64, hostUID string) error {
	return nil
}

type testValidator struct {
	validate *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validate: validator.New()}
	return e
}

func TestCreatePropertyRejectsAnonymous(t *testing.T) {
	e := newTestEcho()
	svc := &stubPropertyService{}
	h := NewPropertyHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/properties", strings.NewReader(`{"title":"Loft","address":"1 Main","city":"Portland","state":"ME"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if svc.created != 0 {
		t.Fatalf("service was called %d times for anonymous request", svc.created)
	}
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if body.Error.Code != "unauthorized" {
		t.Fatalf("error code = %q, want unauthorized", body.Error.Code)
	}
}

func TestCreatePropertyValidatesRequired(t *testing.T) {
	e := newTestEcho()
	svc := &stubPropertyService{}
	h := NewPropertyHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/properties", strings.NewReader(`{"description":"no title"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("uid", "host-1")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if svc.created != 0 {
		t.Fatalf("service was called despite invalid payload")
	}
}

func TestGetPropertyNotFound(t *testing.T) {
	e := newTestEcho()
	h := NewPropertyHandler(&stubPropertyService{getErr: service.ErrNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/properties/99", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")

	if err := h.Get(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestListPropertiesRejectsBadPriceFilter(t *testing.T) {
	e := newTestEcho()
	h := NewPropertyHandler(&stubPropertyService{})

	req := httptest.NewRequest(http.MethodGet, "/api/properties?min_price=abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
