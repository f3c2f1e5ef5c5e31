//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"storefront/internal/handler/api"
	resdto "storefront/internal/handler/dto/response"
	"storefront/internal/usecase/queries"
	"storefront/tests/common/httptest"
	queriesmock "storefront/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockOrderQueries
	handler     *api.OrderHandler
	buyerID     uuid.UUID
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	s.handler = api.NewOrderHandler(s.mockQueries)
	s.buyerID = uuid.New()

	authed := func(next gin.HandlerFunc) gin.HandlerFunc {
		return func(c *gin.Context) {
			if authHeader := c.GetHeader("Authorization"); authHeader != "" {
				c.Set("user_id", s.buyerID)
			}
			next(c)
		}
	}
	s.router.GET("/orders", authed(s.handler.ListOrders))
	s.router.GET("/orders/:id", authed(s.handler.GetOrder))
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

func (s *OrderHandlerTestSuite) orderView() *queries.OrderView {
	now := time.Now().UTC().Truncate(time.Second)
	return &queries.OrderView{
		ID:            uuid.New(),
		ReservationID: uuid.New(),
		BuyerID:       s.buyerID,
		ItemID:        uuid.New(),
		ItemName:      "Mechanical Keyboard",
		Quantity:      2,
		AmountCents:   1000,
		PaymentMethod: "card",
		Status:        "success",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (s *OrderHandlerTestSuite) TestGetOrder() {
	view := s.orderView()
	url := "/orders/" + view.ID.String()

	s.Run("success: returns the buyer's order", func() {
		s.mockQueries.EXPECT().GetOrder(gomock.Any(), view.ID, s.buyerID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.ID, response.ID)
		s.Equal(view.ReservationID, response.ReservationID)
		s.Equal(view.ItemName, response.ItemName)
		s.Equal(view.AmountCents, response.AmountCents)
		s.Equal(view.Status, response.Status)
	})

	s.Run("error: returns 500 when user_id missing in context", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})

	s.Run("error: malformed order id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid order ID format")
	})

	s.Run("error: another buyer's order reads as not found", func() {
		s.mockQueries.EXPECT().GetOrder(gomock.Any(), view.ID, s.buyerID).
			Return(nil, queries.ErrOrderNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Order not found")
	})

	s.Run("error: returns 500 on query failure", func() {
		s.mockQueries.EXPECT().GetOrder(gomock.Any(), view.ID, s.buyerID).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

func (s *OrderHandlerTestSuite) TestListOrders() {
	url := "/orders"

	s.Run("success: returns the buyer's order history", func() {
		views := []*queries.OrderView{s.orderView(), s.orderView()}
		s.mockQueries.EXPECT().ListBuyerOrders(gomock.Any(), s.buyerID).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []*resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
		s.Equal(views[0].ID, response[0].ID)
	})

	s.Run("success: no orders is an empty array", func() {
		s.mockQueries.EXPECT().ListBuyerOrders(gomock.Any(), s.buyerID).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []*resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Empty(response)
	})

	s.Run("error: returns 500 when user_id missing in context", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})

	s.Run("error: returns 500 on query failure", func() {
		s.mockQueries.EXPECT().ListBuyerOrders(gomock.Any(), s.buyerID).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
