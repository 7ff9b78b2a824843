package router

import "github.com/gin-gonic/gin"

// Module is a feature module mounted under the /api group.
type Module interface {
	Name() string
	Register(rg *gin.RouterGroup)
}
