package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/circuit-maze/api"
	api_i "github.com/beka-birhanu/circuit-maze/api/i"
	"github.com/beka-birhanu/circuit-maze/api/identity"
	levelapi "github.com/beka-birhanu/circuit-maze/api/level"
	progressapi "github.com/beka-birhanu/circuit-maze/api/progress"
	"github.com/beka-birhanu/circuit-maze/config"
	"github.com/beka-birhanu/circuit-maze/infrastruture/leaderboard"
	"github.com/beka-birhanu/circuit-maze/infrastruture/lock"
	logger "github.com/beka-birhanu/circuit-maze/infrastruture/log"
	pb "github.com/beka-birhanu/circuit-maze/infrastruture/pb_encoder"
	"github.com/beka-birhanu/circuit-maze/infrastruture/repo"
	"github.com/beka-birhanu/circuit-maze/infrastruture/token"
	general_i "github.com/beka-birhanu/circuit-maze/interfaces/general"
	"github.com/beka-birhanu/circuit-maze/level"
	"github.com/beka-birhanu/circuit-maze/scene"
	"github.com/beka-birhanu/circuit-maze/service"
	"github.com/beka-birhanu/circuit-maze/service/i"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	leaderboardPrefix = "circuit-maze"
	progressLockTTL   = 8 * time.Second
)

// Global variables for dependencies
var (
	mongoClient        *mongo.Client
	redisClient        *redis.Client
	userRepo           i.UserRepo
	progressRepo       i.ProgressRepo
	levelRegistry      i.LevelRegistry
	progressTracker    i.ProgressTracker
	jwtTokenizer       i.Tokenizer
	authService        i.Authenticator
	authController     api_i.Controller
	levelController    api_i.Controller
	progressController api_i.Controller
	router             *api.Router
	appLogger          general_i.Logger
)

// newLogger creates a component logger or exits.
func newLogger(prefix, color string) general_i.Logger {
	l, err := logger.New(prefix, color, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating %s logger: %v\n", prefix, err)
		os.Exit(1)
	}
	return l
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
		DB:       config.Envs.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initRepos(ctx context.Context, client *mongo.Client) {
	var err error
	userRepo, err = repo.NewUserRepo(ctx, client, config.Envs.DBName, "users")
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating user repository: %v", err))
		os.Exit(1)
	}
	progressRepo = repo.NewProgressRepo(client, config.Envs.DBName, "progress")
	appLogger.Info("Repositories initialized")
}

func initLevelRegistry() {
	levelRegistry = level.NewRegistry(level.Config{
		Logger: newLogger("LEVEL", config.ColorBlue),
	})
	appLogger.Info("Level registry initialized")
}

func initProgressTracker() {
	progressLogger := newLogger("PROGRESS", config.ColorMagenta)

	var err error
	progressTracker, err = service.NewProgressService(&service.ProgressConfig{
		Repo:        progressRepo,
		Leaderboard: leaderboard.NewRedisLeaderboard(redisClient, leaderboardPrefix, config.Envs.LeaderboardTTL),
		Locker:      lock.NewRedsyncLocker(redisClient, progressLockTTL, progressLogger),
		Levels:      levelRegistry,
		Logger:      progressLogger,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating progress service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Progress service initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(userRepo, jwtTokenizer, newLogger("AUTH", config.ColorYellow))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initControllers() {
	var err error
	authController = identity.NewIdentityServer(authService)

	levelController, err = levelapi.NewController(levelRegistry, scene.Builder{}, &pb.Protobuf{}, newLogger("SCENE", config.ColorCyan))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating level controller: %v", err))
		os.Exit(1)
	}

	progressController, err = progressapi.NewController(progressTracker)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating progress controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Controllers initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Mode:                    config.Envs.GinMode,
		Controllers:             []api_i.Controller{authController, levelController, progressController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	// Initialize dependencies
	appLogger = newLogger("APP", config.ColorGreen)

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	initRedis(ctx)
	defer redisClient.Close()

	initRepos(ctx, mongoClient)
	initLevelRegistry()
	initProgressTracker()
	initJWTTokenizer()
	initAuthService()
	initControllers()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
