package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/minliz/udacimarket-backend/api/responses"
	"github.com/minliz/udacimarket-backend/api/validators"
	"github.com/minliz/udacimarket-backend/internal/products"
	pkgerrors "github.com/minliz/udacimarket-backend/pkg/errors"
	"github.com/minliz/udacimarket-backend/pkg/logger"
)

const productsPath = "/products"

func ListProducts(svc products.Service, logg *logger.Logger) http.HandlerFunc {
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

// createProductResponse reports both outcomes of a create: the product row
// always lands first, and the shelf placement can fail independently.
type createProductResponse struct {
	Product        *products.ProductDTO `json:"product"`
	PlacementError string               `json:"placement_error,omitempty"`
}

func CreateProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := productCreateInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		body := createProductResponse{Product: result.Product}
		if result.PlacementErr != nil {
			if typed := pkgerrors.As(result.PlacementErr); typed != nil {
				body.PlacementError = typed.Message()
			} else {
				body.PlacementError = result.PlacementErr.Error()
			}
		}

		writeMutation(w, r, http.StatusCreated, body, productsPath)
	}
}

func UpdateProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlParamInt(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := productUpdateInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeMutation(w, r, http.StatusOK, dto, productsPath)
	}
}

type productPayload struct {
	Name             string     `json:"name" validate:"required"`
	PricePerCostUnit string     `json:"price_per_cost_unit" validate:"required"`
	CostUnit         string     `json:"cost_unit" validate:"required"`
	DepartmentID     int        `json:"department_id" validate:"required,min=1"`
	QuantityInStock  int        `json:"quantity_in_stock,omitempty" validate:"omitempty,min=0"`
	Brand            *string    `json:"brand,omitempty"`
	ProductionDate   *time.Time `json:"production_date,omitempty"`
	BestBeforeDate   *time.Time `json:"best_before_date,omitempty"`
	PLU              *int       `json:"plu,omitempty"`
	UPC              *int64     `json:"upc,omitempty"`
	Organic          bool       `json:"organic,omitempty"`
	Cut              *string    `json:"cut,omitempty"`
	Animal           *string    `json:"animal,omitempty"`
	AisleNumber      *int       `json:"aisle_number,omitempty" validate:"omitempty,min=1"`
}

type productUpdatePayload struct {
	Name             *string    `json:"name,omitempty"`
	PricePerCostUnit *string    `json:"price_per_cost_unit,omitempty"`
	CostUnit         *string    `json:"cost_unit,omitempty"`
	DepartmentID     *int       `json:"department_id,omitempty" validate:"omitempty,min=1"`
	QuantityInStock  *int       `json:"quantity_in_stock,omitempty" validate:"omitempty,min=0"`
	Brand            *string    `json:"brand,omitempty"`
	ProductionDate   *time.Time `json:"production_date,omitempty"`
	BestBeforeDate   *time.Time `json:"best_before_date,omitempty"`
	PLU              *int       `json:"plu,omitempty"`
	UPC              *int64     `json:"upc,omitempty"`
	Organic          *bool      `json:"organic,omitempty"`
	Cut              *string    `json:"cut,omitempty"`
	Animal           *string    `json:"animal,omitempty"`
	AisleNumber      *int       `json:"aisle_number,omitempty" validate:"omitempty,min=1"`
}

func parsePriceString(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "price_per_cost_unit must be a decimal number")
	}
	return price, nil
}

func boolToOrganic(b bool) int {
	if b {
		return 1
	}
	return 0
}

func productCreateInput(r *http.Request) (products.CreateProductInput, error) {
	if isJSONRequest(r) {
		var payload productPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return products.CreateProductInput{}, err
		}
		price, err := parsePriceString(payload.PricePerCostUnit)
		if err != nil {
			return products.CreateProductInput{}, err
		}
		return products.CreateProductInput{
			Name:             strings.TrimSpace(payload.Name),
			PricePerCostUnit: price,
			CostUnit:         strings.TrimSpace(payload.CostUnit),
			DepartmentID:     payload.DepartmentID,
			QuantityInStock:  payload.QuantityInStock,
			Brand:            trimPtr(payload.Brand),
			ProductionDate:   payload.ProductionDate,
			BestBeforeDate:   payload.BestBeforeDate,
			PLU:              payload.PLU,
			UPC:              payload.UPC,
			Organic:          boolToOrganic(payload.Organic),
			Cut:              trimPtr(payload.Cut),
			Animal:           trimPtr(payload.Animal),
			AisleNumber:      payload.AisleNumber,
		}, nil
	}

	price, err := validators.FormDecimal(r, "price")
	if err != nil {
		return products.CreateProductInput{}, err
	}
	departmentID, err := validators.FormSelectID(r, "department_name")
	if err != nil {
		return products.CreateProductInput{}, err
	}
	aisleNumber, err := validators.FormSelectID(r, "aisle_name")
	if err != nil {
		return products.CreateProductInput{}, err
	}
	quantity, err := validators.FormOptionalInt(r, "quantity_in_stock")
	if err != nil {
		return products.CreateProductInput{}, err
	}
	plu, err := validators.FormOptionalInt(r, "plu")
	if err != nil {
		return products.CreateProductInput{}, err
	}
	upc, err := validators.FormOptionalInt(r, "upc")
	if err != nil {
		return products.CreateProductInput{}, err
	}
	productionDate, err := validators.FormOptionalDate(r, "production_date")
	if err != nil {
		return products.CreateProductInput{}, err
	}
	bestBeforeDate, err := validators.FormOptionalDate(r, "best_before_date")
	if err != nil {
		return products.CreateProductInput{}, err
	}

	input := products.CreateProductInput{
		Name:           validators.FormString(r, "name"),
		CostUnit:       validators.FormString(r, "cost_unit"),
		Brand:          validators.FormOptionalString(r, "brand"),
		ProductionDate: productionDate,
		BestBeforeDate: bestBeforeDate,
		PLU:            plu,
		Organic:        boolToOrganic(validators.FormCheckbox(r, "organic")),
		Cut:            validators.FormOptionalString(r, "cut"),
		Animal:         validators.FormOptionalString(r, "animal"),
		AisleNumber:    aisleNumber,
	}
	input.PricePerCostUnit = price
	if departmentID != nil {
		input.DepartmentID = *departmentID
	}
	if quantity != nil {
		input.QuantityInStock = *quantity
	}
	if upc != nil {
		v := int64(*upc)
		input.UPC = &v
	}
	return input, nil
}

func productUpdateInput(r *http.Request) (products.UpdateProductInput, error) {
	if isJSONRequest(r) {
		var payload productUpdatePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return products.UpdateProductInput{}, err
		}
		input := products.UpdateProductInput{
			Name:            trimPtr(payload.Name),
			CostUnit:        trimPtr(payload.CostUnit),
			DepartmentID:    payload.DepartmentID,
			QuantityInStock: payload.QuantityInStock,
			Brand:           trimPtr(payload.Brand),
			ProductionDate:  payload.ProductionDate,
			BestBeforeDate:  payload.BestBeforeDate,
			PLU:             payload.PLU,
			UPC:             payload.UPC,
			Cut:             trimPtr(payload.Cut),
			Animal:          trimPtr(payload.Animal),
			AisleNumber:     payload.AisleNumber,
		}
		if payload.PricePerCostUnit != nil {
			price, err := parsePriceString(*payload.PricePerCostUnit)
			if err != nil {
				return products.UpdateProductInput{}, err
			}
			input.PricePerCostUnit = &price
		}
		if payload.Organic != nil {
			v := boolToOrganic(*payload.Organic)
			input.Organic = &v
		}
		return input, nil
	}

	if err := requirePutOverride(r); err != nil {
		return products.UpdateProductInput{}, err
	}

	price, err := validators.FormOptionalDecimal(r, "price")
	if err != nil {
		return products.UpdateProductInput{}, err
	}
	departmentID, err := validators.FormSelectID(r, "department_name")
	if err != nil {
		return products.UpdateProductInput{}, err
	}
	aisleNumber, err := validators.FormSelectID(r, "aisle_name")
	if err != nil {
		return products.UpdateProductInput{}, err
	}
	quantity, err := validators.FormOptionalInt(r, "quantity_in_stock")
	if err != nil {
		return products.UpdateProductInput{}, err
	}
	plu, err := validators.FormOptionalInt(r, "plu")
	if err != nil {
		return products.UpdateProductInput{}, err
	}
	upc, err := validators.FormOptionalInt(r, "upc")
	if err != nil {
		return products.UpdateProductInput{}, err
	}
	productionDate, err := validators.FormOptionalDate(r, "production_date")
	if err != nil {
		return products.UpdateProductInput{}, err
	}
	bestBeforeDate, err := validators.FormOptionalDate(r, "best_before_date")
	if err != nil {
		return products.UpdateProductInput{}, err
	}

	input := products.UpdateProductInput{
		Name:             validators.FormOptionalString(r, "name"),
		PricePerCostUnit: price,
		CostUnit:         validators.FormOptionalString(r, "cost_unit"),
		DepartmentID:     departmentID,
		QuantityInStock:  quantity,
		Brand:            validators.FormOptionalString(r, "brand"),
		ProductionDate:   productionDate,
		BestBeforeDate:   bestBeforeDate,
		PLU:              plu,
		Cut:              validators.FormOptionalString(r, "cut"),
		Animal:           validators.FormOptionalString(r, "animal"),
		AisleNumber:      aisleNumber,
	}
	if upc != nil {
		v := int64(*upc)
		input.UPC = &v
	}
	organic := boolToOrganic(validators.FormCheckbox(r, "organic"))
	input.Organic = &organic
	return input, nil
}
