package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/worker"
)

// Health reports DB and Redis connectivity plus the notification queue
// backlog. A growing backlog with both stores "connected" means the worker
// pool is down or SMTP is tripping the breaker.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "connected"
		var backlog int64 = -1
		if rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		} else {
			confirmations, _ := rdb.LLen(ctx, worker.QueueOrderConfirmation).Result()
			alerts, _ := rdb.LLen(ctx, worker.QueueLowStock).Result()
			backlog = confirmations + alerts
		}

		status := http.StatusOK
		if dbStatus != "connected" || redisStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":            status == http.StatusOK,
			"db":            dbStatus,
			"redis":         redisStatus,
			"queue_backlog": backlog,
		})
	}
}
