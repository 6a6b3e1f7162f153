package main

import (
	"context"
	"log"
	"time"

	"bank-site/internal/logger"
	"bank-site/config"
	"bank-site/dto"
	"bank-site/httpclient"
	"bank-site/repositories"
	"bank-site/services"
	"bank-site/staticgen"
	"bank-site/storeclient"
)

func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	hc := httpclient.New(httpclient.Config{Timeout: time.Duration(cfg.Store.TimeoutSeconds) * time.Second})
	client := storeclient.NewWithHTTPClient(hc, cfg.Store.BaseURL)
	repo := repositories.NewArticleRepository(
		client,
		time.Duration(cfg.Cache.ListTTLSeconds)*time.Second,
		time.Duration(cfg.Cache.SlugTTLSeconds)*time.Second,
	)

	gen, err := staticgen.New(
		services.NewBlogService(repo, cfg.Site.DefaultThumbnail),
		services.NewArticleService(repo, cfg.Site.DefaultThumbnail),
		cfg.Static.TemplatesDir,
		cfg.Static.OutDir,
		dto.PageData{SiteName: cfg.Site.Name, Nav: cfg.Nav},
	)
	if err != nil {
		log.Fatal(err)
	}

	written, err := gen.Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	logger.Log.Infof("wrote %d article pages to %s", written, cfg.Static.OutDir)
}
