package catalog

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/invcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/invcat-service/internal/app/catalog/views"
	"github.com/light-bringer/invcat-service/internal/pkg/logx"
)

// mapDomainErrorToGRPC converts domain errors to gRPC status codes.
func mapDomainErrorToGRPC(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, views.ErrViewNotFound):
		return status.Error(codes.NotFound, "view not found")

	case errors.Is(err, views.ErrTooManyViews):
		return status.Error(codes.ResourceExhausted, "too many open views")

	case errors.Is(err, domain.ErrProductNotFound):
		return status.Error(codes.NotFound, "product not found")

	case errors.Is(err, domain.ErrEmptyTitle),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrInvalidStock),
		errors.Is(err, domain.ErrInvalidDiscountPercent),
		errors.Is(err, domain.ErrInvalidDiscount),
		errors.Is(err, domain.ErrInvalidPage):
		return status.Error(codes.InvalidArgument, err.Error())

	case errors.Is(err, domain.ErrRemoteUnavailable):
		return status.Error(codes.Unavailable, "remote catalog unavailable")

	default:
		logx.Error().Err(err).Msg("unexpected catalog error")
		return status.Error(codes.Internal, "internal server error")
	}
}
