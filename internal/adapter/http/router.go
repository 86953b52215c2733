package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/swapnil-jadhav-official/anamico-india-sub001/internal/adapter/http/middleware"
	"github.com/swapnil-jadhav-official/anamico-india-sub001/internal/logging"
	"github.com/swapnil-jadhav-official/anamico-india-sub001/internal/usecase"
)

func NewRouter(oh *OrderHandler, rh *RegistrationHandler, ah *AdminHandler, th *TokenHandler, authz *middleware.Authz) *gin.Engine {
	// reject payloads with fields we don't know about
	gin.EnableJsonDecoderDisallowUnknownFields()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())

	l := logging.New("http")
	r.Use(middleware.Logging(l))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/v1/token", th.IssueToken)

	// public status lookup: customers check registrations without logging in
	r.GET("/v1/registrations/status", rh.Status)

	v1 := r.Group("/v1", authz.Authenticate())
	{
		v1.POST("/orders", oh.CreateOrder)
		v1.GET("/orders/:id", oh.GetOrderByID)
		v1.POST("/orders/:id/payment", oh.InitiatePayment)
		v1.POST("/orders/:id/payment/confirm", oh.ConfirmPayment)

		v1.POST("/registrations", rh.Create)
		v1.POST("/registrations/:id/payment", rh.InitiatePayment)
		v1.POST("/registrations/:id/payment/confirm", rh.ConfirmPayment)

		admin := v1.Group("/admin", authz.RequireRole(usecase.RoleAdmin))
		{
			admin.POST("/orders/:id/:action", ah.Transition)
		}
	}

	return r
}
