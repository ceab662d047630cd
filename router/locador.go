package router

import (
	"net/http"

	"yggdrasil/controllers"
	"yggdrasil/models"

	"github.com/gin-gonic/gin"
)

// Locador blocks access when the logged user is not a landlord.
func Locador() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := controllers.GetUserLogged(c)
		if !ok {
			controllers.RespondError(c, "unauthorized", http.StatusUnauthorized)
			c.Abort()
			return
		}
		if user.Role != models.USER_ROLE_LOCADOR {
			controllers.RespondError(c, "rota exclusiva de locadores", http.StatusForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
