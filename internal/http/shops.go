package router

import (
	"net/http"
	"strconv"

	"github.com/Renal37/quickserve/internal/middlewares"
	"github.com/Renal37/quickserve/internal/models"
	"github.com/go-chi/chi/v5"
)

func CreateMyShop(w http.ResponseWriter, r *http.Request) {
	data := middlewares.GetParsedJSONData[models.ShopRequest](w, r)
	shopService := middlewares.GetServiceFromContext[models.ShopService](w, r, middlewares.ShopServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if shopService == nil || user == nil {
		return
	}

	shop, err := (*shopService).CreateShop(r.Context(), user.ID, data)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponseWithStatus(w, http.StatusCreated, shop)
}

func GetMyShop(w http.ResponseWriter, r *http.Request) {
	shopService := middlewares.GetServiceFromContext[models.ShopService](w, r, middlewares.ShopServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if shopService == nil || user == nil {
		return
	}

	shop, err := (*shopService).GetMyShop(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, shop)
}

func UpdateMyShop(w http.ResponseWriter, r *http.Request) {
	data := middlewares.GetParsedJSONData[models.ShopRequest](w, r)
	shopService := middlewares.GetServiceFromContext[models.ShopService](w, r, middlewares.ShopServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if shopService == nil || user == nil {
		return
	}

	shop, err := (*shopService).UpdateMyShop(r.Context(), user.ID, data)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, shop)
}

// ListShops поддерживает параметры q, cuisine и open=true
func ListShops(w http.ResponseWriter, r *http.Request) {
	shopService := middlewares.GetServiceFromContext[models.ShopService](w, r, middlewares.ShopServiceKey)
	if shopService == nil {
		return
	}

	query := r.URL.Query()
	filter := models.ShopFilter{
		Query:   query.Get("q"),
		Cuisine: query.Get("cuisine"),
	}
	if open := query.Get("open"); open != "" {
		openOnly, err := strconv.ParseBool(open)
		if err != nil {
			http.Error(w, "Параметр open должен быть true или false", http.StatusBadRequest)
			return
		}
		filter.OpenOnly = openOnly
	}

	shops, err := (*shopService).ListShops(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, shops)
}

func GetShop(w http.ResponseWriter, r *http.Request) {
	shopService := middlewares.GetServiceFromContext[models.ShopService](w, r, middlewares.ShopServiceKey)
	if shopService == nil {
		return
	}

	shop, err := (*shopService).GetShopBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, shop)
}

func ListShopReviews(w http.ResponseWriter, r *http.Request) {
	reviewService := middlewares.GetServiceFromContext[models.ReviewService](w, r, middlewares.ReviewServiceKey)
	if reviewService == nil {
		return
	}

	reviews, err := (*reviewService).ListShopReviews(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, reviews)
}
