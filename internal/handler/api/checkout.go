package api

import (
	"errors"
	"log/slog"
	"net/http"

	"storefront/internal/domain/order"
	reqdto "storefront/internal/handler/dto/request"
	resdto "storefront/internal/handler/dto/response"
	"storefront/internal/handler/httperr"
	"storefront/internal/handler/middleware"
	"storefront/internal/infra/webhookguard"
	"storefront/internal/usecase/commands"
	"storefront/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CheckoutHandler struct {
	checkoutCommands commands.CheckoutCommands
	orderQueries     queries.OrderQueries
	replayGuard      *webhookguard.Guard
}

func NewCheckoutHandler(
	checkoutCommands commands.CheckoutCommands,
	orderQueries queries.OrderQueries,
	replayGuard *webhookguard.Guard,
) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutCommands: checkoutCommands,
		orderQueries:     orderQueries,
		replayGuard:      replayGuard,
	}
}

// @Summary Initiate checkout
// @Description Reserve stock and open a payment session
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.InitiateCheckoutRequest true "Checkout request"
// @Success 201 {object} resdto.CheckoutResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /checkout [post]
func (h *CheckoutHandler) InitiateCheckout(c *gin.Context) {
	buyerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.InitiateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.checkoutCommands.InitiateCheckout(c.Request.Context(), commands.InitiateCheckoutParams{
		ItemID:        req.ItemID,
		Quantity:      req.Quantity,
		PaymentMethod: req.PaymentMethod,
	}, buyerID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Item not found",
			})
		case errors.Is(err, commands.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Insufficient stock",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Domain validation failed",
			})
		case errors.Is(err, commands.ErrGatewayFailure):
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Payment provider unavailable",
			})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCheckoutResult(result))
}

// @Summary Confirm checkout
// @Description Provider callback applying the payment outcome
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body reqdto.ConfirmCheckoutRequest true "Confirmation payload"
// @Success 200 {object} resdto.ConfirmResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /checkout/confirm [post]
func (h *CheckoutHandler) ConfirmCheckout(c *gin.Context) {
	var req reqdto.ConfirmCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	// The guard only sheds repeat deliveries; the transition predicates in the
	// database stay authoritative. A guard outage fails open into the command.
	first, guardErr := h.replayGuard.FirstDelivery(c.Request.Context(), req.ReservationID, req.Outcome)
	if guardErr != nil {
		slog.Warn("webhook replay guard unavailable, proceeding",
			"reservation_id", req.ReservationID, "error", guardErr.Error())
	} else if !first {
		// Answer with the recorded outcome, not the echoed one: a success
		// delivery on an expired hold was finalized as failed, and its retry
		// has to say so. If the ledger read fails, fall through into the
		// command, which replays safely.
		view, lookupErr := h.orderQueries.GetOrderByReservation(c.Request.Context(), req.ReservationID)
		if lookupErr == nil {
			c.JSON(http.StatusOK, resdto.ConfirmResponse{
				ReservationID: req.ReservationID,
				OrderStatus:   view.Status,
				Replayed:      true,
			})
			return
		}
		slog.Warn("failed to resolve replayed delivery from the order ledger, reapplying",
			"reservation_id", req.ReservationID, "error", lookupErr.Error())
	}

	result, err := h.checkoutCommands.ConfirmCheckout(c.Request.Context(), req.ReservationID, order.Status(req.Outcome))
	if err != nil {
		// Clear the marker so the provider's retry is not misread as a replay.
		if guardErr == nil {
			if forgetErr := h.replayGuard.Forget(c.Request.Context(), req.ReservationID, req.Outcome); forgetErr != nil {
				slog.Warn("failed to clear webhook replay marker",
					"reservation_id", req.ReservationID, "error", forgetErr.Error())
			}
		}

		switch {
		case errors.Is(err, commands.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		case errors.Is(err, commands.ErrAlreadyFinalized):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Order already finalized with a different outcome",
			})
		case errors.Is(err, commands.ErrAlreadyTerminal):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Reservation already terminal",
			})
		case errors.Is(err, commands.ErrInvalidOutcome):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid confirmation outcome",
			})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromConfirmResult(result))
}

// @Summary Cancel checkout
// @Description Release the buyer's held reservation
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /checkout/{id}/cancel [post]
func (h *CheckoutHandler) CancelCheckout(c *gin.Context) {
	buyerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	reservationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	if err := h.checkoutCommands.CancelCheckout(c.Request.Context(), reservationID, buyerID); err != nil {
		switch {
		case errors.Is(err, commands.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		case errors.Is(err, commands.ErrNotReservationOwner):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Reservation belongs to another buyer",
			})
		case errors.Is(err, commands.ErrAlreadyTerminal):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Reservation already terminal",
			})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
