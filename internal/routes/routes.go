package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"socialfeed/cache"
	"socialfeed/internal/handlers"
	"socialfeed/internal/repository"
	"socialfeed/services"
)

// Deps holds shared dependencies to inject into handlers.
type Deps struct {
	Client   *mongo.Client
	DB       *mongo.Database
	Cache    cache.Store
	CacheTTL time.Duration
}

// Register wires repositories, services and handlers, and mounts all routes.
func Register(app *fiber.App, d Deps) {
	postRepo := repository.NewPostRepository(d.DB)
	likeRepo := repository.NewLikeRepository(d.DB)
	commentRepo := repository.NewCommentRepository(d.Client, d.DB)
	feedRepo := repository.NewFeedRepository(d.DB)
	viewRepo := repository.NewViewRepository(d.DB)

	viewSvc := services.NewViewService(viewRepo, d.Cache, d.CacheTTL)
	postH := &handlers.PostHandler{Service: services.NewPostService(postRepo)}
	feedH := &handlers.FeedHandler{Service: services.NewFeedService(feedRepo)}
	likeH := &handlers.LikeHandler{Service: services.NewLikeService(likeRepo, postRepo, viewSvc)}
	commentH := &handlers.CommentHandler{Service: services.NewCommentService(commentRepo, postRepo, viewSvc)}
	viewH := &handlers.ViewHandler{Service: viewSvc}
	exportH := &handlers.ExportHandler{Service: services.NewExportService(feedRepo)}

	api := app.Group("/api")

	posts := api.Group("/posts")
	posts.Post("/", postH.Create)
	posts.Get("/feed", feedH.GetFeed)
	posts.Get("/myLiked", viewH.MyLiked)
	posts.Get("/myCommented", viewH.MyCommented)
	posts.Get("/export", exportH.Export)
	posts.Put("/:id", postH.Update)
	posts.Delete("/:id", postH.Delete)
	posts.Post("/:id/recount", postH.Recount)
	posts.Post("/:postId/like", likeH.Toggle)
	posts.Post("/:postId/comments", commentH.Create)
	posts.Get("/:postId/comments", commentH.ListLatest)

	comments := api.Group("/comments")
	comments.Put("/:commentId", commentH.Update)
	comments.Delete("/:commentId", commentH.Delete)
}
