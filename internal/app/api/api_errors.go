package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/shopgrid/marketplace-api/internal/domains/catalog/application"
	catalogports "github.com/shopgrid/marketplace-api/internal/domains/catalog/ports"
	ordersapp "github.com/shopgrid/marketplace-api/internal/domains/orders/application"
	ordersdomain "github.com/shopgrid/marketplace-api/internal/domains/orders/domain"
	ordersports "github.com/shopgrid/marketplace-api/internal/domains/orders/ports"
	storesapp "github.com/shopgrid/marketplace-api/internal/domains/stores/application"
	storesports "github.com/shopgrid/marketplace-api/internal/domains/stores/ports"
	apierrors "github.com/shopgrid/marketplace-api/internal/shared/errors"
)

// Per-context responders translate application errors into RFC 7807 problem
// responses through the shared mapper chain.
var (
	orderResponder   = apierrors.NewChainedResponder("", orderProblem)
	catalogResponder = apierrors.NewChainedResponder("", catalogProblem)
	storeResponder   = apierrors.NewChainedResponder("", storeProblem)
)

func respondBadRequest(c *gin.Context, err error) {
	apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}

// orderProblem maps order placement and transition failures. An insufficient
// line carries the shortfall so clients can render availability.
func orderProblem(err error) (apierrors.ProblemDetail, bool) {
	var insufficient *ordersports.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		return apierrors.ErrConflict.
			WithDetail(insufficient.Error()).
			WithExtension("variationId", insufficient.VariationID).
			WithExtension("available", insufficient.Available).
			WithExtension("requested", insufficient.Requested), true
	case errors.Is(err, ordersports.ErrIdempotencyConflict):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, ordersports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, ordersports.ErrVariationNotFound):
		return apierrors.ErrUnprocessable.WithDetail(err.Error()), true
	case errors.Is(err, ordersdomain.ErrInvalidStatus):
		return apierrors.ErrBadRequest.
			WithDetail(err.Error()).
			WithExtension("allowedValues", ordersdomain.Statuses()), true
	case errors.Is(err, ordersapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ordersports.ErrStorage):
		return apierrors.ErrUnavailable.WithDetail(http.StatusText(http.StatusServiceUnavailable)), true
	}
	return apierrors.ProblemDetail{}, false
}

func catalogProblem(err error) (apierrors.ProblemDetail, bool) {
	var insufficient *catalogports.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		return apierrors.ErrConflict.
			WithDetail(insufficient.Error()).
			WithExtension("variationId", insufficient.VariationID).
			WithExtension("available", insufficient.Available).
			WithExtension("requested", insufficient.Requested), true
	case errors.Is(err, catalogports.ErrProductNotFound),
		errors.Is(err, catalogports.ErrVariationNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, catalogapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func storeProblem(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, storesports.ErrSlugTaken):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, storesports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, storesapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
