package router

import (
	"net/http"

	"surv/controllers"

	"github.com/gin-gonic/gin"
)

// Dispatcher blocks access when the user is neither admin nor manager.
func Dispatcher() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := controllers.GetUserLogged(c)
		if !ok {
			controllers.RespondError(c, "unauthorized", http.StatusUnauthorized)
			c.Abort()
			return
		}
		if !user.CanDispatch() {
			controllers.RespondError(c, "admin or manager required", http.StatusForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
