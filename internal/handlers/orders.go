package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopapi/internal/apperr"
	"shopapi/internal/middleware"
	"shopapi/internal/models"
	"shopapi/internal/service"
)

type createOrderItemRequest struct {
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type createOrderRequest struct {
	Items           []createOrderItemRequest `json:"items"`
	ShippingAddress addressRequest           `json:"shippingAddress"`
	PaymentMethod   string                   `json:"paymentMethod"`
}

func CreateOrder(orders *service.Orders, development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders"

		au, ok := middleware.CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, envelope{Success: false, Message: "unauthorized"})
			return
		}

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, route, &apperr.ValidationError{Field: "body", Message: "invalid request body"}, development)
			return
		}

		items := make([]models.OrderItem, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, models.OrderItem{
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				Price:       item.Price,
			})
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		order, err := orders.Create(ctx, au.ID, service.CreateOrderInput{
			Items:           items,
			ShippingAddress: req.ShippingAddress.toModel(),
			PaymentMethod:   req.PaymentMethod,
		})
		if err != nil {
			respondError(c, route, err, development)
			return
		}

		respondData(c, http.StatusCreated, "Order created successfully", order)
	}
}

func GetOrders(orders *service.Orders, development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders"

		au, ok := middleware.CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, envelope{Success: false, Message: "unauthorized"})
			return
		}

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			respondError(c, route, err, development)
			return
		}

		query := service.ListQuery{
			Status: models.Status(c.Query("status")),
			Page:   page,
			Limit:  limit,
		}
		if !au.IsAdmin() {
			query.Owner = &au.ID
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		list, pagination, err := orders.List(ctx, query)
		if err != nil {
			respondError(c, route, err, development)
			return
		}

		respondPage(c, list, pagination)
	}
}

func GetOrder(orders *service.Orders, development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders/:id"

		au, ok := middleware.CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, envelope{Success: false, Message: "unauthorized"})
			return
		}

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, route, &apperr.ValidationError{Field: "id", Message: "invalid order id"}, development)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		order, err := orders.Get(ctx, id, ownerConstraint(au))
		if err != nil {
			respondError(c, route, err, development)
			return
		}

		respondData(c, http.StatusOK, "", order)
	}
}

func CancelOrder(orders *service.Orders, development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/orders/:id/cancel"

		au, ok := middleware.CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, envelope{Success: false, Message: "unauthorized"})
			return
		}

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, route, &apperr.ValidationError{Field: "id", Message: "invalid order id"}, development)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		order, err := orders.Cancel(ctx, id, ownerConstraint(au))
		if err != nil {
			respondError(c, route, err, development)
			return
		}

		respondData(c, http.StatusOK, "Order cancelled successfully", order)
	}
}

// DeleteOrder is admin-only; the route group enforces the role.
func DeleteOrder(orders *service.Orders, development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/orders/:id"

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, route, &apperr.ValidationError{Field: "id", Message: "invalid order id"}, development)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := orders.Delete(ctx, id); err != nil {
			respondError(c, route, err, development)
			return
		}

		respondData(c, http.StatusOK, "Order deleted successfully", nil)
	}
}

// ownerConstraint limits lookups to the caller's own orders unless the
// caller is an admin.
func ownerConstraint(au middleware.AuthUser) *primitive.ObjectID {
	if au.IsAdmin() {
		return nil
	}
	id := au.ID
	return &id
}
