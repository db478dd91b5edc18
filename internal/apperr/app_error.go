package apperr

import "github.com/tuanvumaihuynh/sneaker-shop/pkg/zerror"

const (
	ValidationErrorCode  = "VALIDATION_FAILED"
	InvalidBodyCode      = "INVALID_BODY"
	ProductNotFoundCode  = "PRODUCT_NOT_FOUND"
	OrderNotFoundCode    = "ORDER_NOT_FOUND"
	RouteNotFoundCode    = "ROUTE_NOT_FOUND"
	MethodNotAllowedCode = "METHOD_NOT_ALLOWED"
	UnhealthyCode        = "UNHEALTHY"
)

var (
	ValidationErr       = zerror.NewValidationFailed(ValidationErrorCode, "validation error")
	InvalidBodyErr      = zerror.NewBadRequest(InvalidBodyCode, "request body is not valid JSON")
	ProductNotFoundErr  = zerror.NewNotFound(ProductNotFoundCode, "product not found")
	OrderNotFoundErr    = zerror.NewNotFound(OrderNotFoundCode, "order not found")
	RouteNotFoundErr    = zerror.NewNotFound(RouteNotFoundCode, "route not found")
	MethodNotAllowedErr = zerror.NewBadRequest(MethodNotAllowedCode, "method not allowed")
	UnhealthyErr        = zerror.NewServiceUnavailable(UnhealthyCode, "service is unhealthy")
)
