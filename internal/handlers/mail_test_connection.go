package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wearluxe/internal/mailer"
)

// TestMailConnection probes the mail transport without sending anything.
// Transports that cannot be probed report ok as long as they exist.
func TestMailConnection(sender mailer.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/mail/test"
		defer handlePanic(c, route)

		tester, ok := sender.(interface{ TestConnection() error })
		if !ok {
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "transport has no probe"})
			return
		}

		if err := tester.TestConnection(); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
