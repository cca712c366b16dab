package routes

import (
	"time"

	"classroom-service/internal/api/handlers"
	"classroom-service/internal/api/middleware"
	"classroom-service/internal/repositories/postgres"
	"classroom-service/internal/services"
	"classroom-service/internal/websocket"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type Router struct {
	engine            *gin.Engine
	wsHandler         *handlers.WSHandler
	sessionHandler    *handlers.SessionHandler
	contentHandler    *handlers.ContentHandler
	discussionHandler *handlers.DiscussionHandler
	attendanceHandler *handlers.AttendanceHandler
	userHandler       *handlers.UserHandler
	rateLimitMW       *middleware.RateLimitMiddleware
	authMW            *middleware.AuthMiddleware
}

func NewRouter(
	hub *websocket.Hub,
	presence *services.PresenceService,
	activity *services.ActivityService,
	db *gorm.DB,
	jwtSecret string,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS())
	engine.Use(middleware.LogApi())

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	materialRepo := postgres.NewMaterialRepository(db)
	assignmentRepo := postgres.NewAssignmentRepository(db)
	discussionRepo := postgres.NewDiscussionRepository(db)
	attendanceRepo := postgres.NewAttendanceRepository(db)

	// Services
	userService := services.NewUserService(userRepo)
	sessionService := services.NewSessionService(sessionRepo, userRepo)
	contentService := services.NewContentService(materialRepo, assignmentRepo, sessionRepo)
	discussionService := services.NewDiscussionService(discussionRepo, sessionRepo, userRepo)
	attendanceService := services.NewAttendanceService(attendanceRepo, sessionRepo, userRepo)

	return &Router{
		engine:            engine,
		wsHandler:         handlers.NewWSHandler(hub, presence),
		sessionHandler:    handlers.NewSessionHandler(sessionService, activity),
		contentHandler:    handlers.NewContentHandler(contentService, activity),
		discussionHandler: handlers.NewDiscussionHandler(discussionService, hub, activity),
		attendanceHandler: handlers.NewAttendanceHandler(attendanceService, hub, activity),
		userHandler:       handlers.NewUserHandler(userService, presence),
		rateLimitMW:       middleware.NewRateLimitMiddleware(presence),
		authMW:            middleware.NewAuthMiddleware(jwtSecret),
	}
}

func (r *Router) SetupRoutes() {
	r.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.engine.Group("/api/v1")

	// WebSocket endpoint; token may come from the query string
	api.GET("/ws",
		r.authMW.RequireAuth(),
		r.rateLimitMW.WebSocketRateLimit(5, time.Minute),
		r.wsHandler.HandleWebSocket,
	)

	auth := api.Group("/")
	auth.Use(r.authMW.RequireAuth())
	{
		auth.GET("/ws/stats", r.wsHandler.GetRelayStats)

		users := auth.Group("/users")
		users.Use(r.rateLimitMW.RateLimit(100, time.Minute))
		{
			users.GET("/me", r.userHandler.GetProfile)
			users.GET("/search", r.userHandler.SearchUsers)
			users.GET("/online", r.userHandler.GetOnlineUsers)
		}

		sessions := auth.Group("/sessions")
		sessions.Use(r.rateLimitMW.RateLimit(100, time.Minute))
		{
			sessions.GET("", r.sessionHandler.ListSessions)
			sessions.POST("", r.authMW.RequireTeacher(), r.sessionHandler.CreateSession)
			sessions.GET("/:id", r.sessionHandler.GetSession)
			sessions.PUT("/:id", r.authMW.RequireTeacher(), r.sessionHandler.UpdateSession)
			sessions.PUT("/:id/status", r.authMW.RequireTeacher(), r.sessionHandler.ChangeStatus)
			sessions.DELETE("/:id", r.authMW.RequireTeacher(), r.sessionHandler.DeleteSession)

			sessions.GET("/:id/members", r.wsHandler.GetRoomMembers)

			sessions.GET("/:id/materials", r.contentHandler.ListMaterials)
			sessions.POST("/:id/materials", r.authMW.RequireTeacher(), r.contentHandler.AddMaterial)
			sessions.GET("/:id/assignments", r.contentHandler.ListAssignments)
			sessions.POST("/:id/assignments", r.authMW.RequireTeacher(), r.contentHandler.AddAssignment)

			sessions.GET("/:id/attendance", r.attendanceHandler.GetRoster)
			sessions.POST("/:id/attendance", r.attendanceHandler.Mark)
		}

		materials := auth.Group("/materials")
		materials.Use(r.rateLimitMW.RateLimit(100, time.Minute))
		{
			materials.PUT("/:id", r.contentHandler.UpdateMaterial)
			materials.DELETE("/:id", r.contentHandler.DeleteMaterial)
		}

		assignments := auth.Group("/assignments")
		assignments.Use(r.rateLimitMW.RateLimit(100, time.Minute))
		{
			assignments.PUT("/:id", r.contentHandler.UpdateAssignment)
			assignments.DELETE("/:id", r.contentHandler.DeleteAssignment)
		}

		// Discussion writes are chattier than the rest of the API
		posts := auth.Group("/")
		posts.Use(r.rateLimitMW.RateLimit(200, time.Minute))
		{
			posts.GET("/sessions/:id/posts", r.discussionHandler.GetSessionPosts)
			posts.POST("/sessions/:id/posts", r.discussionHandler.CreatePost)
			posts.PUT("/posts/:id", r.discussionHandler.UpdatePost)
			posts.DELETE("/posts/:id", r.discussionHandler.DeletePost)
			posts.POST("/posts/:id/like", r.discussionHandler.ToggleLike)
			posts.POST("/posts/:id/comments", r.discussionHandler.CreateComment)
			posts.PUT("/comments/:id", r.discussionHandler.UpdateComment)
			posts.DELETE("/comments/:id", r.discussionHandler.DeleteComment)
			posts.POST("/comments/:id/replies", r.discussionHandler.CreateReply)
			posts.PUT("/replies/:id", r.discussionHandler.UpdateReply)
		}
	}
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
