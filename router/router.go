package router

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/rajalakshmi-growphil/zoho-crm-integration/docs"
	"github.com/rajalakshmi-growphil/zoho-crm-integration/handler"
)

func NewRouter(authHandler *handler.AuthHandler, recordHandler *handler.RecordHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", handler.HealthCheck)

	mux.Handle("/auth", handler.ErrorHandlingMiddleware(authHandler.Authorize))
	mux.Handle("/callback", handler.ErrorHandlingMiddleware(authHandler.Callback))

	mux.Handle("/create_customer", handler.ErrorHandlingMiddleware(recordHandler.CreateCustomer))
	mux.Handle("/customers", handler.ErrorHandlingMiddleware(recordHandler.ListCustomers))
	mux.Handle("/create_order", handler.ErrorHandlingMiddleware(recordHandler.CreateOrder))
	mux.Handle("/orders", handler.ErrorHandlingMiddleware(recordHandler.ListOrders))

	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return handler.RequestIDMiddleware(mux)
}
