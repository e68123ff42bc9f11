package router

import (
	"net/http"

	"github.com/Renal37/quickserve/internal/middlewares"
	"github.com/Renal37/quickserve/internal/models"
)

func CreateReview(w http.ResponseWriter, r *http.Request) {
	data := middlewares.GetParsedJSONData[models.ReviewRequest](w, r)
	reviewService := middlewares.GetServiceFromContext[models.ReviewService](w, r, middlewares.ReviewServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if reviewService == nil || user == nil {
		return
	}

	review, err := (*reviewService).CreateReview(r.Context(), user.ID, data)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponseWithStatus(w, http.StatusCreated, review)
}

func GetReviewEligibility(w http.ResponseWriter, r *http.Request) {
	orderID, ok := uuidParam(w, r, "orderID")
	if !ok {
		return
	}

	reviewService := middlewares.GetServiceFromContext[models.ReviewService](w, r, middlewares.ReviewServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if reviewService == nil || user == nil {
		return
	}

	eligibility, err := (*reviewService).CheckEligibility(r.Context(), user.ID, orderID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, eligibility)
}
