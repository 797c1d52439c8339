package http

import (
	"errors"
	"net/http"

	"riskdesk/internal/dataprocessing"
	apierrors "riskdesk/internal/errors"
	"riskdesk/internal/services"
)

// mapServiceError translates service and data-layer errors into APIErrors
// so the central handler renders precise RFC 7807 problems. Unrecognized
// errors pass through and render as internal errors.
func mapServiceError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, services.ErrNoData):
		return apierrors.ErrNoData
	case errors.Is(err, services.ErrPortfolioNotFound):
		return apierrors.NotFoundError("portfolio")
	case errors.Is(err, services.ErrSeriesNotFound):
		return apierrors.NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Unknown series identifier", err.Error())
	case errors.Is(err, services.ErrDateNotAvailable):
		return apierrors.NotFoundError("date")
	}

	var schemaErr *dataprocessing.SheetSchemaError
	if errors.As(err, &schemaErr) {
		return apierrors.NewWithDetails(http.StatusInternalServerError, "SHEET_SCHEMA", schemaErr.Error(), schemaErr.Sheet)
	}

	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return err
}
