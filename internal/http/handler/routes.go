package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"cmsapi/internal/http/middleware"
	"cmsapi/internal/model"
	"cmsapi/internal/service"
	"cmsapi/internal/storage"
)

// Deps groups everything the route table needs. Handlers stay free of
// business logic; each one parses the request, calls its service and writes
// the envelope.
type Deps struct {
	DB         *mongo.Database
	JWTSecret  string
	Files      *FileHandler
	Auth       *AuthHandler
	Users      *UserHandler
	Blogs      *BlogHandler
	Galleries  *GalleryHandler
	Interviews *InterviewHandler
	Media      *MediaHandler
	Magazines  *MagazineHandler
}

// NewDeps wires handlers from services.
func NewDeps(db *mongo.Database, jwtSecret string, store storage.Storage, svc service.Registry) Deps {
	return Deps{
		DB:         db,
		JWTSecret:  jwtSecret,
		Files:      NewFileHandler(store),
		Auth:       NewAuthHandler(svc.Auth),
		Users:      NewUserHandler(svc.Users, svc.Files),
		Blogs:      NewBlogHandler(svc.Blogs, svc.Files),
		Galleries:  NewGalleryHandler(svc.Galleries, svc.Files),
		Interviews: NewInterviewHandler(svc.Interviews, svc.Files),
		Media:      NewMediaHandler(svc.Media, svc.Files),
		Magazines:  NewMagazineHandler(svc.Magazines, svc.Files),
	}
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Reads are
// public; every mutating route requires an admin token.
func RegisterRoutes(app *fiber.App, deps Deps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := deps.DB.Client().Ping(ctx, readpref.Primary()); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	})

	// Simple liveness probe
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	// Stored file content by reference, for drivers without a servable
	// filesystem. A static mount registered earlier wins for the local driver.
	app.Get("/uploads/+", deps.Files.Get)

	admin := middleware.RequireAuth(deps.JWTSecret, model.RoleAdmin)
	authed := middleware.RequireAuth(deps.JWTSecret)

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/login", deps.Auth.Login)
	auth.Post("/change-password", authed, deps.Auth.ChangePassword)

	users := api.Group("/users", admin)
	users.Post("/", deps.Users.Create)
	users.Get("/", deps.Users.List)
	users.Get("/:id", deps.Users.Get)
	users.Patch("/:id", deps.Users.Update)
	users.Delete("/bulk", deps.Users.DeleteMany)
	users.Delete("/:id", deps.Users.Delete)

	blogs := api.Group("/blogs")
	blogs.Post("/", admin, deps.Blogs.Create)
	blogs.Post("/bulk", admin, deps.Blogs.CreateMany)
	blogs.Get("/", deps.Blogs.List)
	blogs.Get("/slug/:slug", deps.Blogs.GetBySlug)
	blogs.Get("/:id", deps.Blogs.Get)
	blogs.Patch("/:id", admin, deps.Blogs.Update)
	blogs.Delete("/bulk", admin, deps.Blogs.DeleteMany)
	blogs.Delete("/:id", admin, deps.Blogs.Delete)

	galleries := api.Group("/galleries")
	galleries.Post("/", admin, deps.Galleries.Create)
	galleries.Get("/", deps.Galleries.List)
	galleries.Get("/:id", deps.Galleries.Get)
	galleries.Patch("/:id", admin, deps.Galleries.Update)
	galleries.Delete("/bulk", admin, deps.Galleries.DeleteMany)
	galleries.Delete("/:id", admin, deps.Galleries.Delete)

	interviews := api.Group("/interviews")
	interviews.Post("/", admin, deps.Interviews.Create)
	interviews.Get("/", deps.Interviews.List)
	interviews.Get("/slug/:slug", deps.Interviews.GetBySlug)
	interviews.Get("/:id", deps.Interviews.Get)
	interviews.Patch("/:id", admin, deps.Interviews.Update)
	interviews.Delete("/bulk", admin, deps.Interviews.DeleteMany)
	interviews.Delete("/:id", admin, deps.Interviews.Delete)

	media := api.Group("/media")
	media.Post("/", admin, deps.Media.Create)
	media.Get("/", deps.Media.List)
	media.Get("/slug/:slug", deps.Media.GetBySlug)
	media.Get("/:id", deps.Media.Get)
	media.Patch("/:id", admin, deps.Media.Update)
	media.Delete("/bulk", admin, deps.Media.DeleteMany)
	media.Delete("/:id", admin, deps.Media.Delete)

	magazines := api.Group("/magazines")
	magazines.Post("/", admin, deps.Magazines.Create)
	magazines.Get("/", deps.Magazines.List)
	magazines.Get("/:id", deps.Magazines.Get)
	magazines.Patch("/:id", admin, deps.Magazines.Update)
	magazines.Delete("/bulk", admin, deps.Magazines.DeleteMany)
	magazines.Delete("/:id", admin, deps.Magazines.Delete)
}
