package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/minliz/udacimarket-backend/internal/aisles"
	pkgerrors "github.com/minliz/udacimarket-backend/pkg/errors"
	"github.com/minliz/udacimarket-backend/pkg/pagination"
	"github.com/minliz/udacimarket-backend/pkg/types"
)

type stubAisleService struct {
	rows []aisles.AisleDTO
	dto  *aisles.AisleDTO
	err  error

	created   *aisles.CreateAisleInput
	deletedNo int
	deleteErr error
}

func (s *stubAisleService) List(ctx context.Context, page pagination.Params) ([]aisles.AisleDTO, error) {
	return s.rows, s.err
}

func (s *stubAisleService) Find(ctx context.Context, aisleNumber int) (*aisles.AisleDTO, error) {
	return s.dto, s.err
}

func (s *stubAisleService) Create(ctx context.Context, input aisles.CreateAisleInput) (*aisles.AisleDTO, error) {
	s.created = &input
	return s.dto, s.err
}

func (s *stubAisleService) Update(ctx context.Context, aisleNumber int, input aisles.UpdateAisleInput) (*aisles.AisleDTO, error) {
	return s.dto, s.err
}

func (s *stubAisleService) Delete(ctx context.Context, aisleNumber int) error {
	s.deletedNo = aisleNumber
	return s.deleteErr
}

func TestCreateAisleFormParsesNumber(t *testing.T) {
	svc := &stubAisleService{dto: &aisles.AisleDTO{AisleNumber: 4, Name: "Frozen"}}
	handler := CreateAisle(svc, nil)

	resp := postForm(t, handler, "/aisles/create", url.Values{
		"aisle_number": {"4"},
		"name":         {"Frozen"},
	})

	if resp.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", resp.Code)
	}
	if svc.created == nil || svc.created.AisleNumber != 4 || svc.created.Name != "Frozen" {
		t.Fatalf("unexpected input %+v", svc.created)
	}
}

func TestCreateAisleMissingNumberIs400(t *testing.T) {
	svc := &stubAisleService{}
	handler := CreateAisle(svc, nil)

	resp := postForm(t, handler, "/aisles/create", url.Values{"name": {"Frozen"}})

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.created != nil {
		t.Fatal("service should not be called")
	}
}

func TestDeleteAisle(t *testing.T) {
	svc := &stubAisleService{}
	r := chi.NewRouter()
	r.Delete("/aisles/{aisle_number}", DeleteAisle(svc, nil))

	req := httptest.NewRequest(http.MethodDelete, "/aisles/9", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.deletedNo != 9 {
		t.Fatalf("expected aisle 9 deleted, got %d", svc.deletedNo)
	}
	var envelope struct {
		Data map[string]int `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	if envelope.Data["deleted"] != 9 {
		t.Fatalf("unexpected body %+v", envelope.Data)
	}
}

func TestDeleteUnknownAisleIs422(t *testing.T) {
	svc := &stubAisleService{deleteErr: pkgerrors.New(pkgerrors.CodeUnprocessable, "aisle not found")}
	r := chi.NewRouter()
	r.Delete("/aisles/{aisle_number}", DeleteAisle(svc, nil))

	req := httptest.NewRequest(http.MethodDelete, "/aisles/404", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
	var payload types.ErrorPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decoding payload: %v", err)
	}
	if payload.Message != "aisle not found" {
		t.Fatalf("unexpected message %q", payload.Message)
	}
}
