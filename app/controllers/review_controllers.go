package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shashiranjanraj/ameya/app/repositories"
	"github.com/shashiranjanraj/ameya/app/services"
	"github.com/shashiranjanraj/ameya/app/state"
	"github.com/shashiranjanraj/ameya/pkg/bind"
	"github.com/shashiranjanraj/ameya/pkg/logger"
	"github.com/shashiranjanraj/ameya/pkg/response"
	"gorm.io/gorm"
)

// ReviewController serves product reviews. Writing requires a login.
type ReviewController struct {
	reviews  *services.ReviewService
	repo     *repositories.ReviewRepository
	products *repositories.ProductRepository
	session  *state.SessionContext
}

func NewReviewController(
	reviews *services.ReviewService,
	repo *repositories.ReviewRepository,
	products *repositories.ProductRepository,
	session *state.SessionContext,
) *ReviewController {
	return &ReviewController{reviews: reviews, repo: repo, products: products, session: session}
}

// Index lists a product's reviews with the rating aggregate.
func (c *ReviewController) Index(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	list, err := c.repo.FindByProduct(productID)
	if err != nil {
		logger.WithCtx(r.Context()).Error("review list", "product_id", productID, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load reviews")
		return
	}

	rating, err := c.reviews.RatingFor(productID)
	if err != nil {
		logger.WithCtx(r.Context()).Error("review rating", "product_id", productID, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load reviews")
		return
	}

	response.Success(w, map[string]interface{}{"reviews": list, "rating": rating})
}

// Submit creates or replaces the caller's review for a product.
func (c *ReviewController) Submit(w http.ResponseWriter, r *http.Request) {
	user, ok := c.session.Current()
	if !ok {
		response.Unauthorized(w)
		return
	}

	productID := chi.URLParam(r, "id")
	if _, err := c.products.FindByID(productID); errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}

	var in services.ReviewInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	review, err := c.reviews.Submit(user, productID, in)
	if err != nil {
		logger.WithCtx(r.Context()).Error("review submit", "product_id", productID, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not save review")
		return
	}
	response.Created(w, review)
}

// Delete removes the caller's review.
func (c *ReviewController) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := c.session.Current()
	if !ok {
		response.Unauthorized(w)
		return
	}

	reviewID := chi.URLParam(r, "reviewId")
	err := c.reviews.Delete(user.ID, reviewID)
	switch {
	case errors.Is(err, services.ErrNotReviewOwner):
		response.Forbidden(w)
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.NotFound(w)
	case err != nil:
		logger.WithCtx(r.Context()).Error("review delete", "review_id", reviewID, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not delete review")
	default:
		response.Success(w, map[string]bool{"deleted": true})
	}
}
