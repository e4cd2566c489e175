package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jmcole/inkwell-be/cache"
	"github.com/jmcole/inkwell-be/config"
	"github.com/jmcole/inkwell-be/controllers"
	"github.com/jmcole/inkwell-be/db/mysqldb"
	"github.com/jmcole/inkwell-be/middleware"
	"github.com/jmcole/inkwell-be/routes"
	"github.com/jmcole/inkwell-be/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("error loading configuration ", err)
	}

	database, err := mysqldb.GetDatabase(&cfg.DB)
	if err != nil {
		log.Fatal("Received err when attempting to connect to DB ", err)
	}
	defer database.Close()

	if err := configureFirebaseCredentials(); err != nil {
		log.Fatal("an error occurred while configuring firebase credentials ", err)
	}
	app, err := firebase.NewApp(context.Background(), nil)
	if err != nil {
		log.Fatalf("error initializing firebase: %v\n", err)
	}
	authClient, err := app.Auth(context.Background())
	if err != nil {
		log.Fatal("error initializing auth client ", err)
	}
	verifier := &middleware.FirebaseVerifier{Client: authClient}

	pageCache, err := buildPageCache(&cfg.Cache)
	if err != nil {
		log.Fatal("error initializing page cache ", err)
	}

	postBucket, err := services.NewStorageBucket(context.Background(), app, cfg.Storage.Bucket)
	if err != nil {
		log.Fatal("An error occurred while connecting to the post uploads bucket ", err)
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORSOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	postController := controllers.NewPostController(database, postBucket)
	followController := controllers.NewFollowController(database)

	routes.AddPostRoutes(&r.RouterGroup, database, postController, pageCache, verifier, cfg)
	routes.AddGroupRoutes(&r.RouterGroup, database, verifier, cfg)
	routes.AddUserRoutes(&r.RouterGroup, database, followController, verifier, cfg)
	routes.AddFollowRoutes(&r.RouterGroup, database, followController, verifier)
	routes.AddFeedRoutes(&r.RouterGroup, database, verifier, cfg)
	routes.AddAdminRoutes(&r.RouterGroup, database, pageCache, verifier)
	routes.AddHealthCheckRoutes(&r.RouterGroup)

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal("Error when attempting to run web server ", err)
	}
}

func buildPageCache(cfg *config.CacheConfig) (cache.PageCache, error) {
	switch cfg.Backend {
	case "redis":
		return cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	case "memory":
		return cache.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

const (
	CredentialsPathEnvVar = "GOOGLE_APPLICATION_CREDENTIALS"
	CredentialsJsonEnvVar = "GOOGLE_APPLICATION_CREDENTIALS_JSON"
	TargetCredentialsFile = "./google-application-credentials.json"
)

func configureFirebaseCredentials() error {
	credentialsPath, hasCredentialsPath := os.LookupEnv(CredentialsPathEnvVar)
	if hasCredentialsPath {
		log.Printf("Credentials path detected in env. Expecting credentials to be at %v\n", credentialsPath)
		return nil
	}
	credentialsJson, hasCredentialsJson := os.LookupEnv(CredentialsJsonEnvVar)
	if hasCredentialsJson {
		log.Println("Credentials JSON string detected in env.")
		err := os.WriteFile(TargetCredentialsFile, []byte(credentialsJson), 0400)
		if err != nil {
			return fmt.Errorf("error writing credentials to temp file, %w", err)
		}
		err = os.Setenv(CredentialsPathEnvVar, TargetCredentialsFile)
		if err != nil {
			return fmt.Errorf("error setting %v env var %w", CredentialsPathEnvVar, err)
		}
		return nil
	}
	return fmt.Errorf("must specify either %v (a path)"+
		" or %v (credentials as JSON string)", CredentialsPathEnvVar, CredentialsJsonEnvVar)
}
