package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpapi "github.com/iamdominic/portfolio-backend/internal/api/http"
	"github.com/iamdominic/portfolio-backend/internal/api/http/middleware"
	authhttp "github.com/iamdominic/portfolio-backend/internal/auth/http"
	authmw "github.com/iamdominic/portfolio-backend/internal/auth/middleware"
	authsvc "github.com/iamdominic/portfolio-backend/internal/auth/service"
	"github.com/iamdominic/portfolio-backend/internal/media"
	mediahttp "github.com/iamdominic/portfolio-backend/internal/media/http"
	projecthttp "github.com/iamdominic/portfolio-backend/internal/projects/http"
	projectsvc "github.com/iamdominic/portfolio-backend/internal/projects/service"
)

type RouterDeps struct {
	ServiceName  string
	Version      string
	Logger       *zap.Logger
	CORSOrigins  []string
	Health       httpapi.Pinger
	Projects     *projectsvc.ProjectService
	Media        *media.Client
	Sessions     *authsvc.SessionService
	SessionTTL   time.Duration
	SecureCookie bool
	AdminLimiter *middleware.IPRateLimiter
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(dep.Logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Health)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	projectHandler := projecthttp.New(dep.Projects)
	projectHandler.RegisterPublic(api.Group("/projects"))

	authhttp.New(dep.Sessions, dep.SessionTTL, dep.SecureCookie).Register(api.Group("/auth"))

	admin := api.Group("/admin")
	if dep.AdminLimiter != nil {
		admin.Use(dep.AdminLimiter.Handler())
	}
	admin.Use(authmw.RequireAdmin(dep.Sessions))

	projectHandler.RegisterAdmin(admin.Group("/projects"))
	mediahttp.New(dep.Media).Register(admin.Group("/media"))

	return r
}
