package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports the inventory service and its dependencies. Postgres is
// required; Redis is optional (nil client = caches and background scans
// disabled), so a missing Redis reports "disabled" without failing the check.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "up"
		if db == nil {
			dbStatus = "down"
		} else if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "down"
		}

		redisStatus := "disabled"
		if rdb != nil {
			redisStatus = "up"
			if rdb.Ping(ctx).Err() != nil {
				redisStatus = "down"
			}
		}

		ok := dbStatus == "up" && redisStatus != "down"
		status := http.StatusOK
		if !ok {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"service": "onnuri-inven",
			"ok":      ok,
			"db":      dbStatus,
			"redis":   redisStatus,
		})
	}
}
