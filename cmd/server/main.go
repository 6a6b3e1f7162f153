package main

import (
	"log"
	"net/http"
	"time"

	"github.com/rs/cors"

	"bank-site/internal/logger"
	"bank-site/cmd/server/auth"
	"bank-site/cmd/server/router"
	"bank-site/config"
	"bank-site/dashboard"
	"bank-site/dto"
	"bank-site/httpclient"
	"bank-site/repositories"
	"bank-site/services"
	"bank-site/storeclient"
)

const dashboardIdleTTL = 2 * time.Hour

func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	jwtm, err := auth.NewJWTManagerFromEnv()
	if err != nil {
		log.Fatal(err)
	}
	creds, err := auth.NewCredentialsFromEnv()
	if err != nil {
		log.Fatal(err)
	}

	hc := httpclient.New(httpclient.Config{Timeout: time.Duration(cfg.Store.TimeoutSeconds) * time.Second})
	client := storeclient.NewWithHTTPClient(hc, cfg.Store.BaseURL)
	repo := repositories.NewArticleRepository(
		client,
		time.Duration(cfg.Cache.ListTTLSeconds)*time.Second,
		time.Duration(cfg.Cache.SlugTTLSeconds)*time.Second,
	)

	r := router.New(router.Deps{
		Repo:      repo,
		Blog:      services.NewBlogService(repo, cfg.Site.DefaultThumbnail),
		Articles:  services.NewArticleService(repo, cfg.Site.DefaultThumbnail),
		Dashboard: dashboard.NewManager(repo, dashboardIdleTTL),
		JWT:       jwtm,
		Creds:     creds,
		Page: dto.PageData{
			SiteName: cfg.Site.Name,
			Nav:      cfg.Nav,
		},
		TemplatesDir: cfg.Static.TemplatesDir,
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.CorsAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-Id"},
	})

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: corsHandler.Handler(r),
	}

	logger.Log.Infof("listening on %s", cfg.Server.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
