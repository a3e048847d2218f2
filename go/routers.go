package northwindserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route binds an HTTP method and path to a gin handler.
type Route struct {
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the per-context API handler sets served by the router.
type ApiHandleFunctions struct {
	OrderAPI OrderAPI
}

// NewRouter returns a gin engine with all API routes registered.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	router := gin.Default()
	return NewRouterWithGinEngine(router, handleFunctions)
}

// NewRouterWithGinEngine registers all API routes on an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = defaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

func defaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			Method:      http.MethodGet,
			Pattern:     "/api/orders",
			HandlerFunc: handleFunctions.OrderAPI.ListOrders,
		},
		{
			Method:      http.MethodPost,
			Pattern:     "/api/orders",
			HandlerFunc: handleFunctions.OrderAPI.AddOrder,
		},
		{
			Method:      http.MethodGet,
			Pattern:     "/api/orders/:orderId",
			HandlerFunc: handleFunctions.OrderAPI.GetOrder,
		},
		{
			Method:      http.MethodPut,
			Pattern:     "/api/orders/:orderId",
			HandlerFunc: handleFunctions.OrderAPI.UpdateOrder,
		},
		{
			Method:      http.MethodDelete,
			Pattern:     "/api/orders/:orderId",
			HandlerFunc: handleFunctions.OrderAPI.RemoveOrder,
		},
	}
}
