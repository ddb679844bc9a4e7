package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/velunaskf/veluna-api/internal/api/middleware"
	"github.com/velunaskf/veluna-api/internal/errors"
	"github.com/velunaskf/veluna-api/internal/models"
	service "github.com/velunaskf/veluna-api/internal/services"
	"github.com/velunaskf/veluna-api/internal/utils"
	"github.com/velunaskf/veluna-api/internal/utils/response"
)

type CartHandler struct {
	cartService *service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// cartKey resolves the cart owner for the request: the authenticated user
// when present, otherwise the guest session token from the header.
func cartKey(r *http.Request, bodySessionID string) (models.CartKey, error) {
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		return models.CartKey{UserID: &claims.UserID}, nil
	}

	sessionID := r.Header.Get(SessionHeader)
	if sessionID == "" {
		sessionID = bodySessionID
	}

	if sessionID == "" {
		return models.CartKey{}, errors.BadRequestError("A session ID is required for guest carts")
	}

	return models.CartKey{SessionID: sessionID}, nil
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.AddCartItemRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		key, err := cartKey(r, req.SessionID)
		if err != nil {
			response.Error(w, err)
			return
		}

		cart, err := h.cartService.AddItem(r.Context(), key, &req)
		if err != nil {
			logger.Warn("Failed to add cart item", slog.String("productId", req.ProductID.String()), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, err := cartKey(r, "")
		if err != nil {
			response.Error(w, err)
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), key)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) UpdateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateCartItemRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		key, err := cartKey(r, "")
		if err != nil {
			response.Error(w, err)
			return
		}

		cart, err := h.cartService.UpdateItem(r.Context(), key, itemID, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		key, err := cartKey(r, "")
		if err != nil {
			response.Error(w, err)
			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), key, itemID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, err := cartKey(r, "")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.cartService.ClearCart(r.Context(), key); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]bool{"cleared": true})
	}
}
