package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/database/repository/transaction"
	"pantrypal.app/pantry-api-gateway/app/interfaces/http/responses"
)

// TransactionMiddleware runs every mutating request in one transaction.
// Reads go straight to the pool so dbresolver can send them to the replica.
func TransactionMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		tx := db.Begin()
		if tx.Error != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, responses.ErrorResponse{
				Code:  "0e7c3a9f-5d2b-4f8e-a1c6-3b9d7f0e4a25",
				Error: "database unavailable",
			})
			return
		}
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
				panic(r)
			}
		}()
		c.Request = c.Request.WithContext(transaction.WithTx(c.Request.Context(), tx))
		c.Next()

		if c.IsAborted() || c.Writer.Status() >= http.StatusBadRequest {
			tx.Rollback()
			return
		}

		if err := tx.Commit().Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
				Code: "a5a38af2-1605-4f58-a89c-fa3ff390d4db",
			})
			return
		}
	}
}
