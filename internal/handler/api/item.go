package api

import (
	"errors"
	"net/http"

	reqdto "storefront/internal/handler/dto/request"
	resdto "storefront/internal/handler/dto/response"
	"storefront/internal/handler/httperr"
	"storefront/internal/usecase/commands"
	"storefront/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ItemHandler struct {
	itemQueries       queries.ItemQueries
	inventoryCommands commands.InventoryCommands
}

func NewItemHandler(itemQueries queries.ItemQueries, inventoryCommands commands.InventoryCommands) *ItemHandler {
	return &ItemHandler{
		itemQueries:       itemQueries,
		inventoryCommands: inventoryCommands,
	}
}

// @Summary List items
// @Description List all items with current availability
// @Tags items
// @Produce json
// @Success 200 {array} resdto.ItemResponse
// @Router /items [get]
func (h *ItemHandler) ListItems(c *gin.Context) {
	views, err := h.itemQueries.ListItems(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	response := make([]*resdto.ItemResponse, len(views))
	for i, rm := range views {
		response[i] = resdto.FromItemView(rm)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get item
// @Description Get item by ID
// @Tags items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} resdto.ItemResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /items/{id} [get]
func (h *ItemHandler) GetItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid item ID format",
		})
		return
	}

	view, err := h.itemQueries.GetItem(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Item not found",
			})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromItemView(view))
}

// @Summary Restock item
// @Description Add quantity back to an item's available stock
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param request body reqdto.RestockRequest true "Restock request"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /items/{id}/restock [post]
func (h *ItemHandler) Restock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid item ID format",
		})
		return
	}

	var req reqdto.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.inventoryCommands.Restock(c.Request.Context(), id, req.Quantity); err != nil {
		switch {
		case errors.Is(err, commands.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Item not found",
			})
		case errors.Is(err, commands.ErrInvalidRestockQuantity):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Restock quantity must be positive",
			})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
