package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"teamforge/internal/auth"
	"teamforge/internal/config"
	"teamforge/internal/errors"
	"teamforge/internal/handler"
	"teamforge/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	teamHandler *handler.TeamHandler,
	adminHandler *handler.AdminHandler,
	feedbackHandler *handler.FeedbackHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/teams", teamHandler.ListTeams)
	api.POST("/feedback", feedbackHandler.Submit)

	// Secured routes (require JWT authentication)
	secured := api.Group("", jwtMiddleware(cfg.JWTSecret))

	secured.GET("/me", authHandler.Me)

	secured.POST("/teams", teamHandler.CreateTeam)
	secured.GET("/teams/:id", teamHandler.GetTeam)
	secured.PUT("/teams/:id", teamHandler.DecideJoinRequest)
	secured.DELETE("/teams/:id", teamHandler.DeleteTeam)
	secured.POST("/teams/:id/join", teamHandler.SubmitJoinRequest)
	secured.POST("/teams/:id/finalize", teamHandler.FinalizeTeam)

	// Admin routes: valid JWT plus admin role claim
	admin := api.Group("/admin", jwtMiddleware(cfg.JWTSecret), RequireAdmin)

	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users", adminHandler.CreateUser)
	admin.GET("/users/:id", adminHandler.GetUser)
	admin.PUT("/users/:id", adminHandler.UpdateUser)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)

	admin.GET("/teams", adminHandler.ListTeams)
	admin.POST("/teams", adminHandler.CreateTeam)
	admin.GET("/teams/:id", adminHandler.GetTeam)
	admin.PUT("/teams/:id", adminHandler.UpdateTeam)
	admin.DELETE("/teams/:id", adminHandler.DeleteTeam)

	admin.GET("/feedback", adminHandler.ListFeedback)
	admin.POST("/reconcile", adminHandler.Reconcile)
}

// jwtMiddleware verifies the bearer token and stores it in the context under
// "user", carrying *auth.Claims so handlers can read the role claim.
func jwtMiddleware(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(secret),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	})
}

// RequireAdmin rejects callers whose token lacks the admin role.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: "missing or invalid token",
				Code:  "UNAUTHORIZED",
			})
		}
		claims, ok := token.Claims.(*auth.Claims)
		if !ok || claims.Role != model.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
				Error: "admin privileges required",
				Code:  "FORBIDDEN",
			})
		}
		return next(c)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
