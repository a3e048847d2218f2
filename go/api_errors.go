package northwindserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	ordersapp "github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/application"
	ordersports "github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/ports"
	apierrors "github.com/LilDoor/Northwind-order-system-WebApi/internal/shared/errors"
)

func respondBadRequest(c *gin.Context, err error) {
	apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}

func respondBadRequestDetail(c *gin.Context, detail string) {
	apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(detail))
}

// respondOrderServiceError translates orders service failures into RFC 7807 responses.
func respondOrderServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, ordersports.ErrOrderNotFound):
		apierrors.DefaultResponder.NotFound(c, "order", c.Param("orderId"))
	case errors.Is(err, ordersports.ErrInvalidRange):
		apierrors.Respond(c, apierrors.ErrValidation.WithDetail(err.Error()))
	case errors.Is(err, ordersapp.ErrInvalidInput):
		apierrors.Respond(c, apierrors.ErrValidation.WithDetail(err.Error()))
	default:
		// Storage and unexpected failures stay opaque at the boundary. The
		// observability decorator has already logged the cause.
		apierrors.Respond(c, apierrors.ErrInternal)
	}
}
