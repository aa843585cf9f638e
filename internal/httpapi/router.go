package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joelcondh/burien-soccer/internal/gateway"
)

// New wires the route tree. The websocket endpoint shares the cookie auth
// with the JSON API, so only signed-in players receive roster updates.
func New(profiles ProfileApp, rosters RosterApp, cm *gateway.ConnectionManager, jwtSecret string) *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")
	{
		api.POST("/auth/register", Register(profiles))
		api.POST("/auth/login", Login(profiles, jwtSecret))
		api.POST("/auth/logout", Logout())

		authed := api.Group("", Auth(jwtSecret))
		{
			authed.GET("/me", Me(profiles, rosters))
			authed.GET("/roster", Roster(rosters))
			authed.POST("/reservations", Reserve(rosters))
			authed.DELETE("/reservations", CancelReservation(rosters))
			authed.PUT("/profile", UpdateProfile(profiles))

			admin := authed.Group("/admin", RequireAdmin())
			{
				admin.GET("/profiles", AdminProfiles(profiles))
				admin.POST("/profiles/:id/state", AdminSetProfileState(profiles))
			}
		}
	}

	r.GET("/ws", Auth(jwtSecret), func(c *gin.Context) {
		if err := cm.UpgradeConnection(c.Writer, c.Request, accountID(c).String()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upgrade connection"})
		}
	})

	return r
}
