// Package stub is a self-contained backend implementing the API surface the
// client consumes: auth, posts, users, shop, orders, and the realtime fan-out
// endpoint. It exists for tests and local development; it does not model the
// production backend beyond its observable contract.
package stub

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Config controls one stub instance.
type Config struct {
	// DSN is the sqlite location; empty means in-memory.
	DSN string
	// JWTSecret signs issued tokens.
	JWTSecret string
	// RedisURL enables the pub/sub notifier when set; empty keeps fan-out
	// in-process.
	RedisURL string
}

// Server is one stub backend instance.
type Server struct {
	app      *fiber.App
	db       *gorm.DB
	hub      *hub
	notifier *notifier
	secret   string
}

// New builds a stub backend, migrating its schema and wiring the fan-out path.
func New(cfg Config) (*Server, error) {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&userRecord{}, &postRecord{}, &productRecord{}, &orderRecord{}); err != nil {
		return nil, err
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisURL})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("Redis connection warning: %v (continuing without pub/sub)", err)
			rdb = nil
		}
	}

	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:               "zocial stub",
			DisableStartupMessage: true,
		}),
		db:       db,
		hub:      newHub(),
		notifier: newNotifier(rdb),
		secret:   cfg.JWTSecret,
	}

	if s.notifier.active() {
		if err := s.notifier.startSubscriber(context.Background(), func(payload string) {
			s.hub.broadcast([]byte(payload))
		}); err != nil {
			return nil, err
		}
	}

	s.app.Use(logger.New())
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	// Auth is reachable on its bare path and under /api.
	for _, auth := range []fiber.Router{s.app.Group("/auth"), s.app.Group("/api/auth")} {
		auth.Post("/login", s.login)
		auth.Post("/register", s.register)
	}

	api := s.app.Group("/api")

	posts := api.Group("/posts")
	posts.Get("/", s.listPosts)
	posts.Post("/", authRequired(s.secret), s.createPost)

	users := api.Group("/users")
	users.Get("/", authRequired(s.secret), s.listUsers)
	users.Delete("/:id", authRequired(s.secret), s.deleteUser)

	products := api.Group("/products")
	products.Get("/", s.listProducts)
	products.Post("/", s.createProduct)
	products.Delete("/:id", s.deleteProduct)

	orders := api.Group("/orders")
	orders.Get("/", s.listOrders)
	orders.Post("/", s.createOrder)

	s.wsRoutes()
}

// App exposes the fiber app for in-process testing.
func (s *Server) App() *fiber.App {
	return s.app
}

// DB exposes the datastore for seeding.
func (s *Server) DB() *gorm.DB {
	return s.db
}

// Listen serves on addr until the listener fails or Shutdown runs.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown stops the app gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// broadcast routes a frame through Redis when configured, directly through
// the hub otherwise.
func (s *Server) broadcast(ctx context.Context, frame []byte) {
	if s.notifier.active() {
		if err := s.notifier.publish(ctx, string(frame)); err != nil {
			log.Printf("event publish error: %v", err)
		}
		return
	}
	s.hub.broadcast(frame)
}
