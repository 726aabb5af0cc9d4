package dashboard

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/greencart/console/internal/api"
	"github.com/greencart/console/internal/report"
	"github.com/greencart/console/internal/sync"
)

// registerRoutes sets up all dashboard routes on the Gin router.
func registerRoutes(router *gin.Engine, opts StartOpts) {
	router.GET("/login", handleLoginPage(opts))
	router.POST("/login", handleLogin(opts))
	router.POST("/logout", handleLogout(opts))

	guarded := router.Group("/", requireSession(opts.Session))
	guarded.GET("/", handleIndex(opts))
	guarded.GET("/drivers", handleDrivers(opts))
	guarded.GET("/routes", handleRoutes(opts))
	guarded.GET("/orders", handleOrders(opts))
	guarded.GET("/simulations", handleHistory(opts))
	guarded.GET("/simulations/:id", handleSimulation(opts))
	guarded.GET("/api/summary", handleSummary(opts))
	guarded.GET("/api/charts", handleCharts(opts))
	guarded.GET("/api/events", handleSSE(opts.DB))
}

func handleLoginPage(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		if opts.Session.Authenticated() {
			c.Redirect(http.StatusFound, "/")
			return
		}
		_, _, errMsg := opts.Session.Current()
		c.HTML(http.StatusOK, "login.html", gin.H{
			"from":  c.Query("from"),
			"error": errMsg,
		})
	}
}

func handleLogin(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.PostForm("email")
		password := c.PostForm("password")
		if _, err := opts.Session.Login(c.Request.Context(), email, password); err != nil {
			_, _, errMsg := opts.Session.Current()
			c.HTML(http.StatusUnauthorized, "login.html", gin.H{
				"from":  c.PostForm("from"),
				"error": errMsg,
			})
			return
		}
		c.Redirect(http.StatusFound, safeTarget(c.PostForm("from")))
	}
}

func handleLogout(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts.Session.Logout()
		c.Redirect(http.StatusFound, "/login")
	}
}

// safeTarget keeps post-login redirects on this host.
func safeTarget(from string) string {
	if from == "" || !strings.HasPrefix(from, "/") || strings.HasPrefix(from, "//") {
		return "/"
	}
	return from
}

func handleIndex(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _, _ := opts.Session.Current()
		ov := loadOverview(c.Request.Context(), opts.Client, opts.DB, opts.PreviewLimit)
		c.HTML(http.StatusOK, "overview.html", gin.H{
			"user":     user,
			"overview": ov,
		})
	}
}

// entityPage renders one collection list. Each request owns its
// synchronizer: navigating back re-fetches, and staleness across pages is
// accepted by design.
func entityPage[E any](opts StartOpts, res sync.Resource[E], page string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sync.New(opts.Client, res)
		_ = s.Load(c.Request.Context())
		user, _, _ := opts.Session.Current()
		c.HTML(http.StatusOK, page, gin.H{
			"user":  user,
			"items": s.Items(),
			"error": s.Err(),
		})
	}
}

func handleDrivers(opts StartOpts) gin.HandlerFunc {
	return entityPage(opts, sync.Drivers(), "drivers.html")
}

func handleRoutes(opts StartOpts) gin.HandlerFunc {
	return entityPage(opts, sync.Routes(), "routes.html")
}

func handleOrders(opts StartOpts) gin.HandlerFunc {
	return entityPage(opts, sync.Orders(), "orders.html")
}

func handleHistory(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _, _ := opts.Session.Current()
		runs, err := opts.Client.Simulations(c.Request.Context())
		errMsg := ""
		if err != nil && !api.IsNotFound(err) {
			errMsg = api.Reason(err, "Failed to load simulation history")
		}
		c.HTML(http.StatusOK, "history.html", gin.H{
			"user":  user,
			"runs":  runs,
			"error": errMsg,
		})
	}
}

func handleSimulation(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		result, ok, fromCache := loadSimulation(c.Request.Context(), opts.Client, opts.DB, id)
		if !ok {
			c.HTML(http.StatusNotFound, "missing.html", gin.H{"id": id})
			return
		}
		user, _, _ := opts.Session.Current()
		delivery, _ := report.DeliveryChart(&result)
		fuel, _ := report.FuelCostChart(&result)
		c.HTML(http.StatusOK, "simulation.html", gin.H{
			"user":      user,
			"result":    result,
			"delivery":  delivery,
			"fuel":      fuel,
			"fromCache": fromCache,
		})
	}
}

func handleSummary(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		ov := loadOverview(c.Request.Context(), opts.Client, opts.DB, opts.PreviewLimit)
		c.JSON(http.StatusOK, gin.H{
			"totalDrivers": ov.TotalDrivers,
			"totalRoutes":  ov.TotalRoutes,
			"totalOrders":  ov.TotalOrders,
			"hasResult":    ov.HasResult,
			"fromCache":    ov.FromCache,
			"error":        ov.ErrMsg,
		})
	}
}

func handleCharts(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		ov := loadOverview(c.Request.Context(), opts.Client, opts.DB, opts.PreviewLimit)
		if !ov.HasResult {
			c.JSON(http.StatusOK, gin.H{"hasResult": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"hasResult": true,
			"delivery":  ov.Delivery,
			"fuelCost":  ov.FuelCost,
			"preview":   ov.Preview,
		})
	}
}
