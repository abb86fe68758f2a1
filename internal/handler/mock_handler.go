package handler

import (
	"backend/internal/access"
	"backend/internal/middleware"
	"backend/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MockHandler serves the demonstration catalogue and orders. The data is
// static; the endpoints exist to exercise the guard and the decision engine on
// a second resource next to users.
type MockHandler struct {
	mw *middleware.AccessMiddleware
}

func NewMockHandler(mw *middleware.AccessMiddleware) *MockHandler {
	return &MockHandler{mw: mw}
}

type MockProduct struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
}

type MockOrderItem struct {
	ProductID int             `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type MockOrder struct {
	ID      int             `json:"id"`
	OwnerID uuid.UUID       `json:"owner_id"`
	Status  string          `json:"status"`
	Items   []MockOrderItem `json:"items"`
}

// foreignOwnerID owns the second demo order, so callers without read-all see
// only their own
var foreignOwnerID = uuid.MustParse("dae3bbff-7566-4b87-89b4-e0075cebfd8f")

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *MockHandler) RegisterRoutes(router *gin.RouterGroup) {
	mock := router.Group("/mock")
	{
		mock.GET("/products", h.mw.Guard(middleware.GuardConfig{
			Methods: []string{http.MethodGet},
		}), h.GetProducts)

		mock.GET("/orders", h.mw.Guard(middleware.GuardConfig{
			Methods:     []string{http.MethodGet},
			Resource:    "order",
			RequireAuth: true,
		}), h.GetOrders)
	}
}

// GetProducts handles GET /mock/products
// @Summary      List demo products
// @Description  Public static catalogue, no authentication required
// @Tags         mock
// @Produce      json
// @Success      200  {object}  response.Response{data=[]handler.MockProduct}
// @Router       /mock/products [get]
func (h *MockHandler) GetProducts(c *gin.Context) {
	products := []MockProduct{
		{ID: 1, Name: "Lenovo Legion 5 2025 laptop", Price: decimal.NewFromInt(129999), Category: "Electronics"},
		{ID: 2, Name: "iPhone 15 Pro smartphone", Price: decimal.NewFromInt(89999), Category: "Electronics"},
		{ID: 3, Name: "ATH-M50x headphones", Price: decimal.NewFromInt(29999), Category: "Accessories"},
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"products": products}))
}

// GetOrders handles GET /mock/orders
// @Summary      List demo orders
// @Description  Requires a rule for "order"; read-all sees everything, read-own only the caller's orders
// @Tags         mock
// @Produce      json
// @Success      200  {object}  response.Response{data=[]handler.MockOrder}
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /mock/orders [get]
func (h *MockHandler) GetOrders(c *gin.Context) {
	caller := middleware.CallerFrom(c)
	rule := middleware.RuleFrom(c)

	orders := []MockOrder{
		{
			ID:      101,
			OwnerID: caller.UserID(),
			Status:  "delivered",
			Items: []MockOrderItem{
				{ProductID: 1, Quantity: 1, Price: decimal.NewFromInt(129999)},
				{ProductID: 3, Quantity: 1, Price: decimal.NewFromInt(29999)},
			},
		},
		{
			ID:      102,
			OwnerID: foreignOwnerID,
			Status:  "processing",
			Items: []MockOrderItem{
				{ProductID: 2, Quantity: 1, Price: decimal.NewFromInt(89999)},
			},
		},
	}

	if rule != nil && rule.CanReadAll {
		c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"orders": orders}))
		return
	}

	if rule != nil && rule.CanReadOwn {
		own := make([]MockOrder, 0, len(orders))
		for _, order := range orders {
			if order.OwnerID == caller.UserID() {
				own = append(own, order)
			}
		}
		c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"orders": own}))
		return
	}

	fail(c, access.ErrObjectAccessDenied("no access to orders"))
}
