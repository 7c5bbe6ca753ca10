package middleware

import (
	"github.com/JannatulNex/Ticketing-System/config"
	"github.com/gin-gonic/gin"
)

func ConfigMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("config", cfg)
		c.Next()
	}
}

func GetConfig(c *gin.Context) *config.Config {
	cfg, exists := c.Get("config")
	if !exists {
		return nil
	}
	return cfg.(*config.Config)
}
