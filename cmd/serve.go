package main

import (
	"context"
	"fmt"

	"github.com/vitormoschetta/study-buddy/internal/config"
	"github.com/vitormoschetta/study-buddy/internal/generator"
	"github.com/vitormoschetta/study-buddy/internal/handler"
	"github.com/vitormoschetta/study-buddy/internal/server"
	"github.com/vitormoschetta/study-buddy/internal/service"
)

const serviceName = "Study Buddy"

type ServeCommand struct {
	EnvFile string `help:"The .env file to load before reading the environment." default:".env" type:"path"`
}

func (c ServeCommand) Run(ctx context.Context) error {
	config.LoadDotEnv(getLogger("warn"), c.EnvFile)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log := getLogger(cfg.LogLevel)

	factory := generator.NewFactory(cfg, generator.NewHTTPClient(log))
	chat := service.NewChatService(log, cfg, factory)
	h := handler.NewHandler(log, chat, serviceName)

	srv := server.NewServer(log, cfg, h)
	return srv.Start(ctx)
}
