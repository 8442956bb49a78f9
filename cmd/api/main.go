package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/bizprofile/bizprofile-backend-go/internal/config"
	appHTTP "github.com/bizprofile/bizprofile-backend-go/internal/handler/http"
	"github.com/bizprofile/bizprofile-backend-go/internal/pkg/database"
	"github.com/bizprofile/bizprofile-backend-go/internal/pkg/identity"
	"github.com/bizprofile/bizprofile-backend-go/internal/pkg/jwt"
	"github.com/bizprofile/bizprofile-backend-go/internal/pkg/media"
	"github.com/bizprofile/bizprofile-backend-go/internal/pkg/otp"
	"github.com/bizprofile/bizprofile-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/bizprofile/bizprofile-backend-go/internal/service/auth"
	serviceProfile "github.com/bizprofile/bizprofile-backend-go/internal/service/profile"
	"github.com/bizprofile/bizprofile-backend-go/migrations"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	if err := database.Migrate(dsn, migrations.FS); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	userRepo := postgresql.NewUserRepository(db)
	profileRepo := postgresql.NewProfileRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	mediaClient := media.NewClient(cfg.Media)
	mediaCleaner := media.NewCleaner(mediaClient, 128)
	defer mediaCleaner.Close()
	verifyCodes := otp.NewStore(redisClient, 15*time.Minute)

	var identityMirror identity.Mirror
	if cfg.Identity.BaseURL != "" {
		identityMirror = identity.NewClient(cfg.Identity)
	}

	authService := serviceAuth.NewAuthService(db, userRepo, jwtService, jwtRepo, identityMirror, verifyCodes)
	profileService := serviceProfile.NewProfileService(db, profileRepo, mediaClient, mediaCleaner)

	authHandler := appHTTP.NewAuthHandler(jwtService, authService)
	profileHandler := appHTTP.NewProfileHandler(profileService)

	router := appHTTP.NewRouter(cfg, jwtService, authHandler, profileHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
