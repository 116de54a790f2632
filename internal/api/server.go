package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"portfolio-service/internal/service"
)

type ServerOptions struct {
	Owners   *service.OwnerService
	Projects *service.ProjectService
	Blogs    *service.BlogService
	Contacts *service.ContactService
	Tokens   *service.TokenIssuer

	// RateLimit is requests per second per client; zero disables limiting.
	RateLimit float64
	RateBurst int

	// RequireAuth puts every content mutation behind a bearer token.
	RequireAuth bool
}

// NewServer wires middleware and routes onto a fresh echo instance.
func NewServer(opts ServerOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = httpErrorHandler

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			evt := logger.Info()
			if v.Error != nil {
				evt = logger.Warn().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	if opts.RateLimit > 0 {
		e.Use(middleware.RateLimiterWithConfig(rateLimiterConfig(opts.RateLimit, opts.RateBurst)))
	}

	owners := NewOwnerHandler(opts.Owners)
	projects := NewProjectHandler(opts.Projects)
	blogs := NewBlogHandler(opts.Blogs)
	contacts := NewContactHandler(opts.Contacts)

	auth := []echo.MiddlewareFunc{bearerAuth(opts.Tokens), owners.RequireOwner}
	var guard []echo.MiddlewareFunc
	if opts.RequireAuth {
		guard = auth
	}

	// Auth
	e.POST("/signup", owners.Signup)
	e.POST("/login", owners.Login)
	e.GET("/owner/me", owners.Me, auth...)
	e.POST("/logout", owners.Logout, auth...)

	// Projects
	pg := e.Group("/projects")
	collection(pg, http.MethodPost, projects.CreateProject, guard...)
	collection(pg, http.MethodGet, projects.GetProjects)
	collection(pg, http.MethodDelete, projects.DeleteAllProjects, guard...)
	pg.GET("/:id", projects.GetProject)
	pg.PUT("/:id", projects.UpdateProject, guard...)
	pg.DELETE("/:id", projects.DeleteProject, guard...)

	// Blogs
	bg := e.Group("/blogs")
	collection(bg, http.MethodPost, blogs.CreateBlog, guard...)
	collection(bg, http.MethodGet, blogs.GetBlogs)
	collection(bg, http.MethodDelete, blogs.DeleteAllBlogs, guard...)
	bg.GET("/:id", blogs.GetBlog)
	bg.PUT("/:id", blogs.UpdateBlog, guard...)
	bg.DELETE("/:id", blogs.DeleteBlog, guard...)

	// Contacts
	cg := e.Group("/contacts")
	collection(cg, http.MethodPost, contacts.CreateContact, guard...)
	cg.PUT("/:id", contacts.UpdateContact, guard...)
	cg.DELETE("/:id", contacts.DeleteContact, guard...)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":  "ok",
			"service": "portfolio-service",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	return e
}

// collection registers a route on both "/projects" and "/projects/".
func collection(g *echo.Group, method string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	g.Add(method, "", h, m...)
	g.Add(method, "/", h, m...)
}

func rateLimiterConfig(limit float64, burst int) middleware.RateLimiterConfig {
	return middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(limit),
				Burst:     burst,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusTooManyRequests, detail("rate limit exceeded"))
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, detail("rate limit exceeded"))
		},
	}
}
