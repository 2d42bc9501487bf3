package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/RaiAraujo30/Complete-Physical-Store/providers"
)

// Error codes returned in the errorCode field of failed responses.
const (
	CodeInvalidCEP                = "INVALID_CEP_FORMAT"
	CodeInvalidState              = "INVALID_STATE_FORMAT"
	CodeAddressNotFound           = "ADDRESS_NOT_FOUND"
	CodeGeocodeProviderError      = "GEOCODE_PROVIDER_ERROR"
	CodeFallbackProviderError     = "FALLBACK_PROVIDER_ERROR"
	CodeFreightProviderError      = "FREIGHT_PROVIDER_ERROR"
	CodeDistanceUnresolvable      = "DISTANCE_UNRESOLVABLE"
	CodeDistanceCalculation       = "DISTANCE_CALCULATION_ERROR"
	CodeDeliveryCriteriaNotFound  = "DELIVERY_CRITERIA_NOT_FOUND"
	CodeFreightCalculation        = "FREIGHT_CALCULATION_ERROR"
	CodeFreightQuoteMalformed     = "FREIGHT_QUOTE_MALFORMED"
	CodeNoStoresFound             = "NO_STORES_FOUND"
	CodeStoreNotFound             = "STORE_NOT_FOUND"
	CodeDeliveryCriterionNotFound = "DELIVERY_CRITERION_NOT_FOUND"
	CodeDatabaseError             = "DATABASE_ERROR"
)

// ServiceError is a typed error with an HTTP status code, a stable error code and
// the parameters needed to diagnose it.
type ServiceError struct {
	StatusCode int
	Code       string
	Message    string
	Details    map[string]any
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return e.Code + ": " + e.Message
}

func (e *ServiceError) Unwrap() error { return e.Err }

func newServiceError(status int, code, message string, details map[string]any, cause error) *ServiceError {
	if details == nil {
		details = map[string]any{}
	}
	if cause != nil {
		details["cause"] = cause.Error()
	}
	return &ServiceError{StatusCode: status, Code: code, Message: message, Details: details, Err: cause}
}

func ErrInvalidCEP(cep string) *ServiceError {
	return newServiceError(http.StatusBadRequest, CodeInvalidCEP,
		"Invalid CEP format. Please provide a valid 8-digit CEP.", map[string]any{"cep": cep}, nil)
}

func ErrInvalidState(state string) *ServiceError {
	return newServiceError(http.StatusBadRequest, CodeInvalidState,
		"Invalid state format. Use 'UF' (e.g., RS, SP).", map[string]any{"state": state}, nil)
}

func ErrStoreNotFound(id string) *ServiceError {
	return newServiceError(http.StatusNotFound, CodeStoreNotFound,
		fmt.Sprintf("Store with ID %s not found", id), map[string]any{"id": id}, nil)
}

func ErrDeliveryCriterionNotFound(id string) *ServiceError {
	return newServiceError(http.StatusNotFound, CodeDeliveryCriterionNotFound,
		fmt.Sprintf("Delivery criterion with ID %s not found", id), map[string]any{"id": id}, nil)
}

func ErrNoStoresFound(cep string) *ServiceError {
	return newServiceError(http.StatusNotFound, CodeNoStoresFound,
		"No stores found within the specified criteria", map[string]any{"cep": cep}, nil)
}

func ErrDistanceCalculation(storeID, cep string, cause error) *ServiceError {
	return newServiceError(http.StatusInternalServerError, CodeDistanceCalculation,
		"Failed to calculate distance for store", map[string]any{"storeId": storeID, "cep": cep}, cause)
}

func ErrDeliveryCriteriaNotFound(distance float64) *ServiceError {
	return newServiceError(http.StatusNotFound, CodeDeliveryCriteriaNotFound,
		"No delivery criteria found for the given distance", map[string]any{"distance": distance}, nil)
}

func ErrFreightCalculation(storeName, cepDestino, cepOrigem string, cause error) *ServiceError {
	return newServiceError(http.StatusInternalServerError, CodeFreightCalculation,
		fmt.Sprintf("Failed to calculate freight for store %s", storeName),
		map[string]any{"storeName": storeName, "cepDestino": cepDestino, "cepOrigem": cepOrigem}, cause)
}

func ErrFreightQuoteMalformed(storeName, leadTime string, cause error) *ServiceError {
	return newServiceError(http.StatusInternalServerError, CodeFreightQuoteMalformed,
		"Freight quote has a malformed lead time", map[string]any{"storeName": storeName, "prazo": leadTime}, cause)
}

func ErrDatabase(op string, cause error) *ServiceError {
	return newServiceError(http.StatusInternalServerError, CodeDatabaseError,
		"Database operation failed", map[string]any{"operation": op}, cause)
}

// FromProviderError maps an error from the providers package onto the service
// taxonomy. Errors already of type *ServiceError are returned unchanged.
func FromProviderError(err error) *ServiceError {
	if err == nil {
		return nil
	}

	var se *ServiceError
	if errors.As(err, &se) {
		return se
	}

	switch {
	case errors.Is(err, providers.ErrAddressNotFound):
		return newServiceError(http.StatusNotFound, CodeAddressNotFound,
			"Address not found", nil, err)
	case errors.Is(err, providers.ErrDistanceUnresolvable):
		return newServiceError(http.StatusBadGateway, CodeDistanceUnresolvable,
			"Distance could not be resolved by any provider", nil, err)
	}

	var pe *providers.ProviderError
	if errors.As(err, &pe) {
		details := map[string]any{"provider": pe.Provider, "operation": pe.Op}
		for k, v := range pe.Params {
			details[k] = v
		}
		switch pe.Provider {
		case providers.ProviderOpenCage:
			return newServiceError(http.StatusBadGateway, CodeFallbackProviderError,
				"Fallback geocoding provider failed", details, err)
		case providers.ProviderCorreios:
			return newServiceError(http.StatusBadGateway, CodeFreightProviderError,
				"Freight provider failed", details, err)
		default:
			return newServiceError(http.StatusBadGateway, CodeGeocodeProviderError,
				"Mapping provider failed", details, err)
		}
	}

	return &ServiceError{
		StatusCode: http.StatusInternalServerError,
		Code:       "INTERNAL_ERROR",
		Message:    "Internal server error",
		Err:        err,
	}
}
