package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/trackside/scorekeeper-api/docs"
	v1 "github.com/trackside/scorekeeper-api/internal/api/handler/v1"
	"github.com/trackside/scorekeeper-api/internal/api/middleware"
	"github.com/trackside/scorekeeper-api/internal/config"
	"github.com/trackside/scorekeeper-api/internal/repository"
	"github.com/trackside/scorekeeper-api/internal/repository/dao"
	"github.com/trackside/scorekeeper-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	liveHandler := v1.NewLiveHandler()
	go liveHandler.Run()

	authHandler := s.initAuthHandler(db)
	teamHandler := s.initTeamHandler(db)
	sessionHandler := s.initSessionHandler(db, liveHandler)
	configHandler := s.initScoringConfigHandler(db)
	leaderboardHandler := s.initLeaderboardHandler(db)
	resetHandler := s.initResetHandler(db, liveHandler)
	s.MountHandlers(authHandler, teamHandler, sessionHandler, configHandler, leaderboardHandler, resetHandler, liveHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	operatorDAO := dao.NewOperatorDAO(db)
	repo := repository.NewOperatorRepository(operatorDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initTeamHandler(db *gorm.DB) *v1.TeamHandler {
	teamDAO := dao.NewTeamDAO(db)
	repo := repository.NewTeamRepository(teamDAO)
	svc := service.NewTeamService(repo)
	handler := v1.NewTeamHandler(svc)

	return handler
}

func (s *Server) initSessionHandler(db *gorm.DB, events service.EventPublisher) *v1.SessionHandler {
	repo := repository.NewSessionRepository(dao.NewSessionDAO(db))
	teamRepo := repository.NewTeamRepository(dao.NewTeamDAO(db))
	configRepo := repository.NewScoringConfigRepository(dao.NewScoringConfigDAO(db))
	svc := service.NewSessionService(repo, teamRepo, configRepo, events)
	handler := v1.NewSessionHandler(svc)

	return handler
}

func (s *Server) initScoringConfigHandler(db *gorm.DB) *v1.ScoringConfigHandler {
	repo := repository.NewScoringConfigRepository(dao.NewScoringConfigDAO(db))
	svc := service.NewScoringConfigService(repo)
	operatorSvc := service.NewOperatorService(repository.NewOperatorRepository(dao.NewOperatorDAO(db)))
	handler := v1.NewScoringConfigHandler(svc, operatorSvc)

	return handler
}

func (s *Server) initLeaderboardHandler(db *gorm.DB) *v1.LeaderboardHandler {
	teamRepo := repository.NewTeamRepository(dao.NewTeamDAO(db))
	sessionRepo := repository.NewSessionRepository(dao.NewSessionDAO(db))
	svc := service.NewLeaderboardService(teamRepo, sessionRepo)
	handler := v1.NewLeaderboardHandler(svc)

	return handler
}

func (s *Server) initResetHandler(db *gorm.DB, events service.EventPublisher) *v1.ResetHandler {
	sessionRepo := repository.NewSessionRepository(dao.NewSessionDAO(db))
	teamRepo := repository.NewTeamRepository(dao.NewTeamDAO(db))
	configRepo := repository.NewScoringConfigRepository(dao.NewScoringConfigDAO(db))
	svc := service.NewResetService(sessionRepo, teamRepo, configRepo, events)
	operatorSvc := service.NewOperatorService(repository.NewOperatorRepository(dao.NewOperatorDAO(db)))
	handler := v1.NewResetHandler(svc, operatorSvc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	teamHandler *v1.TeamHandler,
	sessionHandler *v1.SessionHandler,
	configHandler *v1.ScoringConfigHandler,
	leaderboardHandler *v1.LeaderboardHandler,
	resetHandler *v1.ResetHandler,
	liveHandler *v1.LiveHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	scoring := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		scoring.GET("/teams", teamHandler.HandleListTeams)
		scoring.POST("/teams", teamHandler.HandleCreateTeam)
		scoring.GET("/teams/:teamID", teamHandler.HandleGetTeam)
		scoring.PUT("/teams/:teamID", teamHandler.HandleUpdateTeam)
		scoring.DELETE("/teams/:teamID", teamHandler.HandleDeleteTeam)

		scoring.GET("/sessions", sessionHandler.HandleListSessions)
		scoring.POST("/sessions", sessionHandler.HandleCreateSession)
		scoring.GET("/sessions/:sessionID", sessionHandler.HandleGetSession)
		scoring.GET("/sessions/:sessionID/score", sessionHandler.HandlePreviewScore)
		scoring.PUT("/sessions/:sessionID/obstacles/:obstacleID", sessionHandler.HandleMarkObstacle)
		scoring.POST("/sessions/:sessionID/penalties", sessionHandler.HandleAddPenalty)
		scoring.POST("/sessions/:sessionID/timeouts", sessionHandler.HandleCallTimeout)
		scoring.PUT("/sessions/:sessionID/notes", sessionHandler.HandleUpdateNotes)
		scoring.PUT("/sessions/:sessionID/photos", sessionHandler.HandleUpdatePhotos)
		scoring.POST("/sessions/:sessionID/timer/start", sessionHandler.HandleStartTimer)
		scoring.POST("/sessions/:sessionID/timer/stop", sessionHandler.HandleStopTimer)
		scoring.POST("/sessions/:sessionID/finalize", sessionHandler.HandleFinalize)

		scoring.GET("/config", configHandler.HandleGetConfig)
		scoring.PUT("/config", configHandler.HandleUpdateConfig)

		scoring.GET("/leaderboard", leaderboardHandler.HandleGetLeaderboard)

		scoring.POST("/reset", resetHandler.HandleReset)

		scoring.GET("/live", liveHandler.HandleLive)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Scorekeeper API"
	docs.SwaggerInfo.Description = "Robot obstacle course competition scoring API."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
