package server

import (
	"net/http"
	"time"

	"registeruser/internal/backend/appwrite"
	"registeruser/internal/config"
	"registeruser/internal/database"
	"registeruser/internal/middleware"
	"registeruser/internal/modules/register"
	"registeruser/internal/pkg/jwt"
	"registeruser/internal/repository"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// invocationTokenTTL is only used when minting tokens; the router validates
// incoming ones against their own exp claim.
const invocationTokenTTL = time.Hour

// Server wires the registration handler into an HTTP router.
type Server struct {
	cfg      *config.Config
	logger   *zap.Logger
	register *register.Handler
}

func NewServer(cfg *config.Config, logger *zap.Logger, registerHandler *register.Handler) *Server {
	return &Server{
		cfg:      cfg,
		logger:   logger,
		register: registerHandler,
	}
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()

	router.Use(ginzap.Ginzap(s.logger, time.RFC3339, true))
	router.Use(middleware.ErrorLogger(s.logger))
	router.Use(middleware.CORS(s.cfg.CORSAllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "driver": s.cfg.Driver})
	})

	functions := router.Group("")
	if s.cfg.InvocationSecret != "" {
		tokens := jwt.New(s.cfg.InvocationSecret, invocationTokenTTL)
		functions.Use(middleware.InvocationAuth(tokens, s.cfg.Backend.ProjectID, s.logger))
	}

	// the function runtime posts executions to the root path
	functions.POST("/", s.register.Register)
	s.register.RegisterRoutes(functions.Group("/api/v1"))

	return router
}

// Backends builds the identity and document services for cfg.Driver. The
// returned close func releases the SQL connection pool, if any.
func Backends(cfg *config.Config, logger *zap.Logger) (register.AccountService, register.DocumentService, func() error, error) {
	switch cfg.Driver {
	case config.DriverSQL:
		db, err := database.Connect(cfg.DatabaseURL, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := repository.Migrate(db); err != nil {
			return nil, nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, nil, err
		}
		profiles := repository.Collection{
			DatabaseID:   cfg.Backend.DatabaseID,
			CollectionID: cfg.Backend.CollectionID,
		}
		return repository.NewAccountRepository(db), repository.NewDocumentRepository(db, profiles), sqlDB.Close, nil

	default:
		client := appwrite.NewClient(appwrite.Config{
			Endpoint:  cfg.Backend.Endpoint,
			ProjectID: cfg.Backend.ProjectID,
			APIKey:    cfg.Backend.APIKey,
			Timeout:   cfg.HTTPTimeout,
		}, nil)
		return client.Users(), client.Databases(), func() error { return nil }, nil
	}
}

// Settings maps the config onto the registration service settings.
func Settings(cfg *config.Config) register.Settings {
	return register.Settings{
		DatabaseID:        cfg.Backend.DatabaseID,
		CollectionID:      cfg.Backend.CollectionID,
		CompensateOrphans: cfg.CompensateOrphans,
	}
}
