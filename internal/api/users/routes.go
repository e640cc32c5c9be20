package users

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/profile", Profile)
	router.POST("/tokens", UpdateTokens)
	router.GET("/tokens/history", History)
	router.DELETE("/account", DeleteAccount)
}
