package router

import (
	"net/http"

	"github.com/Renal37/quickserve/internal/middlewares"
	"github.com/Renal37/quickserve/internal/models"
)

func ListMyMenu(w http.ResponseWriter, r *http.Request) {
	menuService := middlewares.GetServiceFromContext[models.MenuService](w, r, middlewares.MenuServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if menuService == nil || user == nil {
		return
	}

	items, err := (*menuService).ListMyItems(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, items)
}

func CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	data := middlewares.GetParsedJSONData[models.MenuItemRequest](w, r)
	menuService := middlewares.GetServiceFromContext[models.MenuService](w, r, middlewares.MenuServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if menuService == nil || user == nil {
		return
	}

	item, err := (*menuService).CreateItem(r.Context(), user.ID, data)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponseWithStatus(w, http.StatusCreated, item)
}

func UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := uuidParam(w, r, "itemID")
	if !ok {
		return
	}

	data := middlewares.GetParsedJSONData[models.MenuItemRequest](w, r)
	menuService := middlewares.GetServiceFromContext[models.MenuService](w, r, middlewares.MenuServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if menuService == nil || user == nil {
		return
	}

	item, err := (*menuService).UpdateItem(r.Context(), user.ID, itemID, data)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, item)
}

func DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := uuidParam(w, r, "itemID")
	if !ok {
		return
	}

	menuService := middlewares.GetServiceFromContext[models.MenuService](w, r, middlewares.MenuServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if menuService == nil || user == nil {
		return
	}

	if err := (*menuService).DeleteItem(r.Context(), user.ID, itemID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func ToggleMenuItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := uuidParam(w, r, "itemID")
	if !ok {
		return
	}

	menuService := middlewares.GetServiceFromContext[models.MenuService](w, r, middlewares.MenuServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if menuService == nil || user == nil {
		return
	}

	item, err := (*menuService).ToggleAvailability(r.Context(), user.ID, itemID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, item)
}
