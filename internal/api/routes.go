package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"resumelab/internal/api/middleware"
	"resumelab/internal/auth"
	"resumelab/internal/config"
	"resumelab/internal/database"
	"resumelab/internal/generate"
	"resumelab/internal/render/pipeline"
	"resumelab/internal/state"
	"resumelab/internal/storage"
	"resumelab/internal/store"
)

// RegisterRoutes 注册 API 路由，不包含 /api 前缀。
func RegisterRoutes(
	router *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	asynqClient *asynq.Client,
	verifier *auth.Verifier,
	redisClient *redis.Client,
	logger *slog.Logger,
	storageClient *storage.Client,
	allowedOrigins []string,
) error {
	repo := database.NewProfileRepo(db)
	blobs := store.NewGormStore(db, logger)
	source := &state.Source{
		Repo:   repo,
		Drafts: blobs,
		Styles: blobs,
		Redis:  redisClient,
	}

	pl, err := pipeline.New(logger, cfg.Render.RasterScale)
	if err != nil {
		return err
	}

	scheduler := NewArtifactScheduler(asynqClient, db, source, cfg.Render.Debounce(), logger)
	genClient := generate.NewClient(cfg.Generate.BaseURL, cfg.Generate.Secret, cfg.Generate.Timeout())

	profileHandler := NewProfileHandler(repo, scheduler)
	draftHandler := NewDraftHandler(blobs, scheduler)
	styleHandler := NewStyleHandler(blobs, scheduler)
	generateHandler := NewGenerateHandler(genClient, source, repo, blobs, redisClient, scheduler)
	previewHandler := NewPreviewHandler(source, pl, cfg.Render.EstimateHeights)
	artifactHandler := NewArtifactHandler(db, storageClient, scheduler)
	wsHandler := NewWsHandler(redisClient, verifier, repo, logger, allowedOrigins)

	authMiddleware := middleware.AccessTokenMiddleware(verifier, repo)

	v1 := router.Group("/v1")
	{
		v1.GET("/ws", wsHandler.HandleConnection)

		profileGroup := v1.Group("/profile")
		profileGroup.Use(authMiddleware)
		{
			profileGroup.GET("", profileHandler.GetProfile)
			profileGroup.PUT("/header", profileHandler.UpdateHeader)
			profileGroup.PUT("/sections/:section", profileHandler.ReplaceSection)
		}

		draftGroup := v1.Group("/draft")
		draftGroup.Use(authMiddleware)
		{
			draftGroup.GET("", draftHandler.GetDraft)
			draftGroup.PUT("", draftHandler.PutDraft)
			draftGroup.DELETE("", draftHandler.DeleteDraft)
			draftGroup.PUT("/:section", draftHandler.PutSection)
			draftGroup.DELETE("/:section", draftHandler.DeleteSection)
		}

		styleGroup := v1.Group("/style")
		styleGroup.Use(authMiddleware)
		{
			styleGroup.GET("", styleHandler.GetStyle)
			styleGroup.PUT("", styleHandler.PutStyle)
		}

		v1.POST("/generate", authMiddleware, generateHandler.Generate)

		previewGroup := v1.Group("/preview")
		previewGroup.Use(authMiddleware)
		{
			previewGroup.GET("", previewHandler.GetPreview)
			previewGroup.POST("", previewHandler.PostPreview)
		}

		artifactGroup := v1.Group("/artifact")
		artifactGroup.Use(authMiddleware)
		{
			artifactGroup.POST("", artifactHandler.RequestArtifact)
			artifactGroup.GET("", artifactHandler.GetArtifact)
			artifactGroup.GET("/download-link", artifactHandler.GetDownloadLink)
			artifactGroup.DELETE("", artifactHandler.DeleteArtifact)
		}
	}

	// 内部运维面：模板或渲染器升级后由运维脚本触发指定用户重渲染。
	internalGroup := router.Group("/internal")
	internalGroup.Use(middleware.InternalSecretMiddleware(cfg.Internal.Secret))
	{
		internalGroup.POST("/artifact/rerender", artifactHandler.RerenderForUser)
	}

	return nil
}
