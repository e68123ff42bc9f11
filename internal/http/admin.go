package router

import (
	"net/http"

	"github.com/Renal37/quickserve/internal/middlewares"
	"github.com/Renal37/quickserve/internal/models"
)

type cleanupResponse struct {
	Deleted int64 `json:"deleted"`
}

// RunCleanup запускает очистку устаревших заказов вне расписания
func RunCleanup(w http.ResponseWriter, r *http.Request) {
	cleanupService := middlewares.GetServiceFromContext[models.CleanupService](w, r, middlewares.CleanupServiceKey)
	if cleanupService == nil {
		return
	}

	deleted, err := (*cleanupService).Cleanup(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, cleanupResponse{Deleted: deleted})
}
