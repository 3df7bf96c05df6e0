package controllers

import (
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/minliz/udacimarket-backend/api/responses"
	"github.com/minliz/udacimarket-backend/api/validators"
	pkgerrors "github.com/minliz/udacimarket-backend/pkg/errors"
	"github.com/minliz/udacimarket-backend/pkg/pagination"
)

const maxPage = 1_000_000

// isJSONRequest reports whether the client sent a JSON body instead of a
// store-front form post.
func isJSONRequest(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}

// listingPage reads the ?page= query parameter. Page zero means "no
// explicit paging": the service applies its configured default.
func listingPage(r *http.Request) (pagination.Params, error) {
	page, err := validators.ParseQueryInt(r, "page", 0, 0, maxPage)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Page: page}, nil
}

// urlParamInt parses a numeric chi route parameter.
func urlParamInt(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, name+" must be numeric")
	}
	return value, nil
}

// requirePutOverride enforces the _method=PUT tunnel on form-based edit
// posts. Real PUT requests pass through untouched.
func requirePutOverride(r *http.Request) error {
	if r.Method == http.MethodPut {
		return nil
	}
	if validators.MethodOverride(r) != http.MethodPut {
		return pkgerrors.New(pkgerrors.CodeMethodNotAllowed, "method not allowed")
	}
	return nil
}

// writeMutation answers a successful create or update: JSON clients get the
// entity back, form posts get bounced to the listing page.
func writeMutation(w http.ResponseWriter, r *http.Request, status int, data any, listPath string) {
	if isJSONRequest(r) {
		responses.WriteSuccessStatus(w, status, data)
		return
	}
	responses.Redirect(w, r, listPath)
}

// trimPtr normalizes an optional text field, dropping it entirely when it
// trims to nothing.
func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}
