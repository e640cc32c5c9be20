package stripe

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	stripe := router.Group("/stripe")
	stripe.POST("/webhook", Webhook)
	stripe.GET("/test", Test)
}
