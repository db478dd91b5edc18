package http

import (
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/apperr"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/model"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/service"
	"github.com/tuanvumaihuynh/sneaker-shop/pkg/validator"
)

type createProductRequest struct {
	Name        string   `json:"name" validate:"notblank"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"gte=0"`
	Colors      []string `json:"colors"`
	Images      []string `json:"images"`
	Category    string   `json:"category"`
	Featured    bool     `json:"featured"`
	Stock       int      `json:"stock" validate:"gte=0"`
}

type updateProductRequest struct {
	Name        *string   `json:"name" validate:"omitempty,notblank"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price" validate:"omitempty,gte=0"`
	Colors      *[]string `json:"colors"`
	Images      *[]string `json:"images"`
	Category    *string   `json:"category"`
	Featured    *bool     `json:"featured"`
	Stock       *int      `json:"stock" validate:"omitempty,gte=0"`
}

type productHandler struct {
	productSvc service.ProductService
	validator  validator.Validator
}

func newProductHandler(productSvc service.ProductService, v validator.Validator) *productHandler {
	return &productHandler{
		productSvc: productSvc,
		validator:  v,
	}
}

func (h *productHandler) ListProducts(w http.ResponseWriter, r *http.Request) error {
	var filter model.ProductFilter
	if err := queryParam(r, "color", &filter.Color); err != nil {
		return err
	}
	if err := queryParam(r, "featured", &filter.Featured); err != nil {
		return err
	}

	products, err := h.productSvc.ListProducts(r.Context(), filter)
	if err != nil {
		return fmt.Errorf("product service list products: %w", err)
	}

	return writeJSON(w, http.StatusOK, products)
}

func (h *productHandler) CreateProduct(w http.ResponseWriter, r *http.Request) error {
	var req createProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	if err := h.validator.Validate(req); err != nil {
		return err
	}

	product, err := h.productSvc.CreateProduct(r.Context(), service.CreateProductParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Colors:      req.Colors,
		Images:      req.Images,
		Category:    req.Category,
		Featured:    req.Featured,
		Stock:       req.Stock,
	})
	if err != nil {
		return fmt.Errorf("product service create product: %w", err)
	}

	return writeJSON(w, http.StatusOK, product)
}

func (h *productHandler) GetProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, apperr.ProductNotFoundErr)
	if err != nil {
		return err
	}

	product, err := h.productSvc.GetProduct(r.Context(), id)
	if err != nil {
		return fmt.Errorf("product service get product: %w", err)
	}

	return writeJSON(w, http.StatusOK, product)
}

func (h *productHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, apperr.ProductNotFoundErr)
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	if err := h.validator.Validate(req); err != nil {
		return err
	}

	product, err := h.productSvc.UpdateProduct(r.Context(), id, model.ProductPatch(req))
	if err != nil {
		return fmt.Errorf("product service update product: %w", err)
	}

	return writeJSON(w, http.StatusOK, product)
}

func (h *productHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, apperr.ProductNotFoundErr)
	if err != nil {
		return err
	}

	if err := h.productSvc.DeleteProduct(r.Context(), id); err != nil {
		return fmt.Errorf("product service delete product: %w", err)
	}

	return writeJSON(w, http.StatusOK, messageResponse{Message: "Product deleted successfully"})
}
