package controller

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"minioj/internal/config"
	"minioj/internal/middleware"
	"minioj/internal/service"
	"minioj/internal/store"
	"minioj/pkg/utils/logger"
	"minioj/pkg/utils/response"
)

// exitProcess is swapped out by tests.
var exitProcess = func() { os.Exit(0) }

// Router builds the gin engine with all routes registered.
func Router(conf *config.Conf, st *store.Store) *gin.Engine {
	judgeService := service.NewJudgeService(conf, st)
	contestService := service.NewContestService(conf, st)

	jobs := NewJobsController(judgeService)
	users := NewUsersController(contestService)
	contests := NewContestsController(contestService)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.Trace())

	router.POST("/jobs", jobs.Submit)
	router.GET("/jobs", jobs.List)
	router.GET("/jobs/:id", jobs.Get)
	router.PUT("/jobs/:id", jobs.Rejudge)

	router.POST("/users", users.Save)
	router.GET("/users", users.List)

	router.POST("/contests", contests.Save)
	router.GET("/contests", contests.List)
	router.GET("/contests/:id", contests.Get)
	router.GET("/contests/:id/ranklist", contests.Ranklist)

	router.GET("/hello", func(c *gin.Context) {
		c.String(http.StatusOK, "Hello World!")
	})
	router.GET("/hello/:name", func(c *gin.Context) {
		c.String(http.StatusOK, "Hello %s!", c.Param("name"))
	})

	router.GET("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/readyz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.POST("/internal/exit", func(c *gin.Context) {
		logger.Info(c.Request.Context(), "Shutdown as requested")
		response.OK(c, gin.H{})
		exitProcess()
	})

	return router
}
