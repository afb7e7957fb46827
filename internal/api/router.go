// Package api exposes the idea generation proxy and the saved-ideas API over HTTP.
package api

import (
	"net/http"

	"github.com/BerylCAtieno/startup-idea-agent/internal/logger"
	"github.com/BerylCAtieno/startup-idea-agent/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options selects which routes are mounted. Nil dependencies disable
// the routes that need them.
type Options struct {
	Generator IdeaGenerator
	Store     store.Store
	Objects   ObjectStore
	Verifier  *JWTVerifier
	RateLimit gin.HandlerFunc
	Gatherer  prometheus.Gatherer
}

func NewRouter(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), CORSMiddleware(), RequestLoggingMiddleware())
	if opts.Verifier != nil {
		r.Use(IdentifyMiddleware(opts.Verifier))
	}
	if opts.RateLimit != nil {
		r.Use(opts.RateLimit)
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	generate := NewGenerateHandler(opts.Generator)
	r.POST("/generate-startup-idea", generate.HandleGenerate)
	r.POST("/functions/v1/generate-startup-idea", generate.HandleGenerate)

	if opts.Verifier == nil || opts.Store == nil {
		logger.Warnf("saved ideas and profile routes disabled (auth secret or store missing)")
		return r
	}

	authed := r.Group("/", AuthMiddleware(opts.Verifier))

	ideas := NewIdeasHandler(opts.Store)
	authed.POST("/ideas", ideas.HandleSave)
	authed.GET("/ideas", ideas.HandleList)

	profile := NewProfileHandler(opts.Store, opts.Objects)
	authed.GET("/profile", profile.HandleGet)
	authed.PUT("/profile/avatar", profile.HandleAvatarUpload)

	return r
}
