package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"contactagenda/internal/config"
	"contactagenda/internal/database"
	"contactagenda/internal/domain"
	"contactagenda/internal/middleware"
	"contactagenda/internal/modules/admin"
	"contactagenda/internal/modules/auth"
	"contactagenda/internal/modules/contacts"
	jwtsvc "contactagenda/internal/pkg/jwt"
	"contactagenda/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	contactRepo := repository.NewContactRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTTL)

	authService := auth.NewService(userRepo, roleRepo, tokenRepo, j, auth.NewBcryptHasher(), cfg.RefreshTTL)
	authHandler := auth.NewHandler(authService)

	contactService := contacts.NewService(contactRepo)
	contactHandler := contacts.NewHandler(contactService)

	adminService := admin.NewService(userRepo, tokenRepo)
	adminHandler := admin.NewHandler(adminService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			contactHandler.RegisterRoutes(protected)

			adminGroup := protected.Group("/admin")
			adminGroup.Use(middleware.RequireRole(domain.RoleAdmin))
			{
				adminHandler.RegisterRoutes(adminGroup)
			}
		}
	}

	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
