package router

import (
	"net/http"

	"github.com/Renal37/quickserve/internal/middlewares"
	"github.com/Renal37/quickserve/internal/models"
)

func ListFavorites(w http.ResponseWriter, r *http.Request) {
	favoriteService := middlewares.GetServiceFromContext[models.FavoriteService](w, r, middlewares.FavoriteServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if favoriteService == nil || user == nil {
		return
	}

	favorites, err := (*favoriteService).ListFavorites(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, favorites)
}

func AddFavorite(w http.ResponseWriter, r *http.Request) {
	shopID, ok := uuidParam(w, r, "shopID")
	if !ok {
		return
	}

	favoriteService := middlewares.GetServiceFromContext[models.FavoriteService](w, r, middlewares.FavoriteServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if favoriteService == nil || user == nil {
		return
	}

	if err := (*favoriteService).AddFavorite(r.Context(), user.ID, shopID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	shopID, ok := uuidParam(w, r, "shopID")
	if !ok {
		return
	}

	favoriteService := middlewares.GetServiceFromContext[models.FavoriteService](w, r, middlewares.FavoriteServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if favoriteService == nil || user == nil {
		return
	}

	if err := (*favoriteService).RemoveFavorite(r.Context(), user.ID, shopID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
