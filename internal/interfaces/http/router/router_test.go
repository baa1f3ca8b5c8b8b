package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v1"))

	group := NewDomainGroup("cart", "/cart")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	r.Register(group)
	r.Setup()

	req := httptest.NewRequest("GET", "/api/v1/cart/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestRouterUseAppliesMiddleware(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	r.Use(func(c *gin.Context) {
		c.Header("X-Marked", "yes")
		c.Next()
	})

	group := NewDomainGroup("catalog", "/catalog")
	group.GET("/products", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.Register(group)
	r.Setup()

	req := httptest.NewRequest("GET", "/api/v1/catalog/products", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "yes", w.Header().Get("X-Marked"))
}

func TestDomainGroup(t *testing.T) {
	t.Run("creates group with name and prefix", func(t *testing.T) {
		g := NewDomainGroup("seller", "/seller")
		assert.Equal(t, "seller", g.Name())
		assert.Equal(t, "/seller", g.Prefix())
	})

	t.Run("registers routes for each method", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("admin", "/admin")
		ok := func(c *gin.Context) { c.Status(http.StatusOK) }
		g.GET("/orders", ok)
		g.POST("/orders/:id/cancel", ok)
		g.PUT("/orders/:id/status", ok)
		g.DELETE("/categories/:id", ok)

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		for _, tc := range []struct {
			method string
			path   string
		}{
			{"GET", "/api/v1/admin/orders"},
			{"POST", "/api/v1/admin/orders/abc/cancel"},
			{"PUT", "/api/v1/admin/orders/abc/status"},
			{"DELETE", "/api/v1/admin/categories/abc"},
		} {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code, tc.method+" "+tc.path)
		}
	})

	t.Run("group middleware runs before routes", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("notifications", "/notifications")
		g.Use(func(c *gin.Context) {
			c.AbortWithStatus(http.StatusUnauthorized)
		})
		g.GET("", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		req := httptest.NewRequest("GET", "/api/v1/notifications", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("subgroups nest under the parent prefix", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("seller", "/seller")
		sub := g.Group("orders", "/orders")
		sub.GET("/unshipped", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		req := httptest.NewRequest("GET", "/api/v1/seller/orders/unshipped", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
