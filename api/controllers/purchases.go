package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/minliz/udacimarket-backend/api/responses"
	"github.com/minliz/udacimarket-backend/api/validators"
	"github.com/minliz/udacimarket-backend/internal/purchases"
	"github.com/minliz/udacimarket-backend/pkg/logger"
)

const purchasesPath = "/purchases"

func ListPurchases(svc purchases.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := listingPage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.List(r.Context(), page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}

func CreatePurchase(svc purchases.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := purchaseCreateInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeMutation(w, r, http.StatusCreated, dto, purchasesPath)
	}
}

func UpdatePurchase(svc purchases.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlParamInt(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := purchaseUpdateInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeMutation(w, r, http.StatusOK, dto, purchasesPath)
	}
}

// The register identifies the line by product and customer name, not id.
type purchasePayload struct {
	ProductName  string     `json:"product_name" validate:"required"`
	CustomerName string     `json:"customer_name" validate:"required"`
	Quantity     int        `json:"quantity" validate:"required,min=1"`
	PurchaseDate *time.Time `json:"purchase_date,omitempty"`
}

type purchaseUpdatePayload struct {
	Quantity     *int       `json:"quantity,omitempty" validate:"omitempty,min=1"`
	PurchaseDate *time.Time `json:"purchase_date,omitempty"`
	IsCancelled  *bool      `json:"is_cancelled,omitempty"`
}

func purchaseCreateInput(r *http.Request) (purchases.CreatePurchaseInput, error) {
	if isJSONRequest(r) {
		var payload purchasePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return purchases.CreatePurchaseInput{}, err
		}
		return purchases.CreatePurchaseInput{
			ProductName:  strings.TrimSpace(payload.ProductName),
			CustomerName: strings.TrimSpace(payload.CustomerName),
			Quantity:     payload.Quantity,
			PurchaseDate: payload.PurchaseDate,
		}, nil
	}

	quantity, err := validators.FormInt(r, "quantity")
	if err != nil {
		return purchases.CreatePurchaseInput{}, err
	}
	purchaseDate, err := validators.FormOptionalDate(r, "purchase_date")
	if err != nil {
		return purchases.CreatePurchaseInput{}, err
	}
	return purchases.CreatePurchaseInput{
		ProductName:  validators.FormString(r, "product_name"),
		CustomerName: validators.FormString(r, "customer_name"),
		Quantity:     quantity,
		PurchaseDate: purchaseDate,
	}, nil
}

func purchaseUpdateInput(r *http.Request) (purchases.UpdatePurchaseInput, error) {
	if isJSONRequest(r) {
		var payload purchaseUpdatePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return purchases.UpdatePurchaseInput{}, err
		}
		return purchases.UpdatePurchaseInput{
			Quantity:     payload.Quantity,
			PurchaseDate: payload.PurchaseDate,
			IsCancelled:  payload.IsCancelled,
		}, nil
	}

	if err := requirePutOverride(r); err != nil {
		return purchases.UpdatePurchaseInput{}, err
	}

	quantity, err := validators.FormOptionalInt(r, "quantity")
	if err != nil {
		return purchases.UpdatePurchaseInput{}, err
	}
	purchaseDate, err := validators.FormOptionalDate(r, "purchase_date")
	if err != nil {
		return purchases.UpdatePurchaseInput{}, err
	}

	isCancelled := validators.FormCheckbox(r, "is_cancelled")
	return purchases.UpdatePurchaseInput{
		Quantity:     quantity,
		PurchaseDate: purchaseDate,
		IsCancelled:  &isCancelled,
	}, nil
}
