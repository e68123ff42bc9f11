package router

import (
	"net/http"

	"github.com/Renal37/quickserve/internal/middlewares"
	"github.com/Renal37/quickserve/internal/models"
	"github.com/go-chi/chi/v5"
)

func PlaceOrder(w http.ResponseWriter, r *http.Request) {
	data := middlewares.GetParsedJSONData[models.PlaceOrderRequest](w, r)
	orderService := middlewares.GetServiceFromContext[models.OrderService](w, r, middlewares.OrderServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if orderService == nil || user == nil {
		return
	}

	order, err := (*orderService).PlaceOrder(r.Context(), user.ID, data)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponseWithStatus(w, http.StatusCreated, order)
}

func ListMyOrders(w http.ResponseWriter, r *http.Request) {
	orderService := middlewares.GetServiceFromContext[models.OrderService](w, r, middlewares.OrderServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if orderService == nil || user == nil {
		return
	}

	orders, err := (*orderService).ListCustomerOrders(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, orders)
}

// ListShopOrders принимает необязательный параметр status
func ListShopOrders(w http.ResponseWriter, r *http.Request) {
	orderService := middlewares.GetServiceFromContext[models.OrderService](w, r, middlewares.OrderServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if orderService == nil || user == nil {
		return
	}

	var status *models.OrderStatus
	if s := r.URL.Query().Get("status"); s != "" {
		parsed := models.OrderStatus(s)
		status = &parsed
	}

	orders, err := (*orderService).ListShopOrders(r.Context(), user.ID, status)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, orders)
}

func GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := uuidParam(w, r, "orderID")
	if !ok {
		return
	}

	orderService := middlewares.GetServiceFromContext[models.OrderService](w, r, middlewares.OrderServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if orderService == nil || user == nil {
		return
	}

	order, err := (*orderService).GetOrder(r.Context(), user, orderID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, order)
}

func GetOrderByToken(w http.ResponseWriter, r *http.Request) {
	orderService := middlewares.GetServiceFromContext[models.OrderService](w, r, middlewares.OrderServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if orderService == nil || user == nil {
		return
	}

	order, err := (*orderService).GetOrderByToken(r.Context(), user.ID, chi.URLParam(r, "token"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, order)
}

func CancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := uuidParam(w, r, "orderID")
	if !ok {
		return
	}

	orderService := middlewares.GetServiceFromContext[models.OrderService](w, r, middlewares.OrderServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if orderService == nil || user == nil {
		return
	}

	order, err := (*orderService).CancelOrder(r.Context(), user.ID, orderID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, order)
}

func UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := uuidParam(w, r, "orderID")
	if !ok {
		return
	}

	data := middlewares.GetParsedJSONData[models.StatusUpdateRequest](w, r)
	orderService := middlewares.GetServiceFromContext[models.OrderService](w, r, middlewares.OrderServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if orderService == nil || user == nil {
		return
	}

	order, err := (*orderService).UpdateStatus(r.Context(), user.ID, orderID, data)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, order)
}
