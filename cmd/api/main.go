package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/CareMeshHealth/hospital-scheduler/internal/config"
	dbpkg "github.com/CareMeshHealth/hospital-scheduler/internal/db"
	"github.com/CareMeshHealth/hospital-scheduler/internal/middleware"
	"github.com/CareMeshHealth/hospital-scheduler/internal/routes"
	"github.com/CareMeshHealth/hospital-scheduler/internal/tokens"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	denylist := tokens.NewDenylist(rdb)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware(cfg))
	r.Use(middleware.RequestIDMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, denylist)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
