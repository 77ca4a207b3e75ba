package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/NoteLegend/CodeKeep/internal/config"
	"github.com/NoteLegend/CodeKeep/internal/database"
	"github.com/NoteLegend/CodeKeep/internal/handlers"
	authmw "github.com/NoteLegend/CodeKeep/internal/middleware"
	"github.com/NoteLegend/CodeKeep/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
	passwordService := services.NewPasswordService()
	userService := services.NewUserService(db, passwordService)
	collectionService := services.NewCollectionService(db)
	snippetService := services.NewSnippetService(db)

	authHandler := handlers.NewAuthHandler(userService, jwtService)
	collectionHandler := handlers.NewCollectionHandler(collectionService)
	snippetHandler := handlers.NewSnippetHandler(snippetService, collectionService)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api")

	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Get("/auth/me", authHandler.Me)

	protected.Get("/collections", collectionHandler.List)
	protected.Post("/collections", collectionHandler.Create)
	protected.Get("/collections/:id", collectionHandler.Get)
	protected.Put("/collections/:id", collectionHandler.Update)
	protected.Delete("/collections/:id", collectionHandler.Delete)

	protected.Get("/snippets", snippetHandler.List)
	protected.Post("/snippets", snippetHandler.Create)
	protected.Get("/snippets/:id", snippetHandler.Get)
	protected.Put("/snippets/:id", snippetHandler.Update)
	protected.Delete("/snippets/:id", snippetHandler.Delete)
	protected.Patch("/snippets/:id/favorite", snippetHandler.ToggleFavorite)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}
