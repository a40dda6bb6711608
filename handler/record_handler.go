package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rajalakshmi-growphil/zoho-crm-integration/common"
	"github.com/rajalakshmi-growphil/zoho-crm-integration/logger"
	"github.com/rajalakshmi-growphil/zoho-crm-integration/model"
	"github.com/rajalakshmi-growphil/zoho-crm-integration/service"
)

// RecordHandler holds dependencies for the CRM relay endpoints.
type RecordHandler struct {
	service *service.RecordService
}

func NewRecordHandler(s *service.RecordService) *RecordHandler {
	return &RecordHandler{service: s}
}

// CreateCustomer godoc
// @Summary      Create a customer record
// @Description  Creates a single record in the CRM Customers module from the request body.
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        customer body model.CreateCustomerRequest true "Customer record"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  common.AppError "Invalid request body"
// @Failure      401  {object}  common.AppError "Authentication with the provider required"
// @Failure      500  {object}  common.AppError "Upstream or storage failure"
// @Router       /create_customer [post]
func (h *RecordHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateCustomerRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	logger.Log.WithField("customer_name", req.Name).Info("Create customer request received")

	zohoResponse, err := h.service.CreateRecord(r.Context(), service.ModuleCustomers, req)
	if err != nil {
		return mapServiceError(err, "Failed to create customer")
	}

	sendCreated(w, "Customer created successfully", zohoResponse)
	return nil
}

// ListCustomers godoc
// @Summary      List customer records
// @Description  Returns the first page (10 records) of the CRM Customers module. The field list is discovered from the provider on every call.
// @Tags         customers
// @Produce      json
// @Success      200  {object}  map[string]interface{} "Raw provider list payload"
// @Failure      401  {object}  common.AppError
// @Failure      500  {object}  common.AppError
// @Router       /customers [get]
func (h *RecordHandler) ListCustomers(w http.ResponseWriter, r *http.Request) *common.AppError {
	payload, err := h.service.ListRecords(r.Context(), service.ModuleCustomers)
	if err != nil {
		return mapServiceError(err, "Failed to fetch customers")
	}

	sendRaw(w, payload)
	return nil
}

// CreateOrder godoc
// @Summary      Create an order record
// @Description  Creates a single record in the CRM Cart_Orders module from the request body.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        order body model.CreateOrderRequest true "Order record"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  common.AppError
// @Failure      401  {object}  common.AppError
// @Failure      500  {object}  common.AppError
// @Router       /create_order [post]
func (h *RecordHandler) CreateOrder(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateOrderRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	logger.Log.WithField("order_name", req.Name).Info("Create order request received")

	zohoResponse, err := h.service.CreateRecord(r.Context(), service.ModuleOrders, req)
	if err != nil {
		return mapServiceError(err, "Failed to create order")
	}

	sendCreated(w, "Order created successfully", zohoResponse)
	return nil
}

// ListOrders godoc
// @Summary      List order records
// @Description  Returns the first page (10 records) of the CRM Cart_Orders module.
// @Tags         orders
// @Produce      json
// @Success      200  {object}  map[string]interface{} "Raw provider list payload"
// @Failure      401  {object}  common.AppError
// @Failure      500  {object}  common.AppError
// @Router       /orders [get]
func (h *RecordHandler) ListOrders(w http.ResponseWriter, r *http.Request) *common.AppError {
	payload, err := h.service.ListRecords(r.Context(), service.ModuleOrders)
	if err != nil {
		return mapServiceError(err, "Failed to fetch orders")
	}

	sendRaw(w, payload)
	return nil
}

// mapServiceError maps the service error taxonomy onto HTTP status codes:
// auth problems become 401, provider rejections keep their own status code,
// everything else is a 500.
func mapServiceError(err error, message string) *common.AppError {
	var (
		exchangeErr *service.TokenExchangeError
		providerErr *service.ProviderError
		schemaErr   *service.SchemaFetchError
	)

	switch {
	case errors.Is(err, service.ErrAuthRequired):
		return common.NewAppError(http.StatusUnauthorized, err.Error(), nil)
	case errors.As(err, &exchangeErr):
		return common.NewAppError(http.StatusUnauthorized, exchangeErr.Reason, err)
	case errors.Is(err, service.ErrAPIDomainMissing):
		return common.NewAppError(http.StatusUnauthorized, "API domain missing. Please authenticate again.", nil)
	case errors.As(err, &providerErr):
		return common.NewAppError(providerErr.StatusCode, message, err).
			WithDetails(providerErr.Body)
	case errors.As(err, &schemaErr):
		return common.NewAppError(http.StatusInternalServerError, "Failed to fetch fields", err).
			WithDetails(schemaErr.Body)
	case errors.Is(err, service.ErrNoFieldsFound):
		return common.NewAppError(http.StatusInternalServerError, "Failed to fetch fields", err).
			WithDetails(err.Error())
	default:
		return common.NewAppError(http.StatusInternalServerError, message, err)
	}
}

func sendCreated(w http.ResponseWriter, message string, zohoResponse json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":       message,
		"zoho_response": zohoResponse,
	})
}

func sendRaw(w http.ResponseWriter, payload json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}
