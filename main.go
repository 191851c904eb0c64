package main

import (
	"context"
	"embed"
	"fmt"
	"log"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
	"gorm.io/gorm/logger"

	"codeweave/internal/database"
	"codeweave/internal/events"
	"codeweave/internal/services"
	"codeweave/internal/utils"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {

	app := NewApp()

	if database.IsDevelopment() {
		if err := utils.LoadEnv(); err != nil {
			log.Printf("no .env loaded: %v", err)
		}
	}

	// A missing or broken store degrades to in-memory-only sessions: the
	// conversation still works, nothing is saved across restarts.
	db, err := database.Init(database.Config{
		LogLevel: logger.Info,
	})
	if err != nil {
		log.Printf("chat store unavailable, running without persistence: %v", err)
		db = nil
	}

	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			app.dbClose = sqlDB.Close
		}
	}

	keyringService := services.NewKeyringService()
	workspaceService := services.NewWorkspaceService()
	dbService := services.NewDbServices(db)
	chatService := services.NewChatService(
		dbService.ChatSync,
		workspaceService,
		keyringService,
		dbService.ModelConfigs,
		dbService.ProjectSettings,
	)

	err = wails.Run(&options.App{
		Title:  "Codeweave",
		Width:  1280,
		Height: 800,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Linux: &linux.Options{
			WindowIsTranslucent: false,
			WebviewGpuPolicy:    linux.WebviewGpuPolicyAlways,
			ProgramName:         "Codeweave",
		},
		BackgroundColour: &options.RGBA{R: 18, G: 18, B: 24, A: 1},
		OnStartup: func(ctx context.Context) {
			app.startup(ctx)
			events.EnableRuntimeEmitter()
			if err := dbService.StartDbServices(ctx); err != nil {
				fmt.Println("Error starting db services:", err)
			}
			workspaceService.Startup(ctx)
			if err := chatService.Startup(ctx); err != nil {
				fmt.Println("Error starting chat service:", err)
			}
		},
		OnShutdown: app.shutdown,
		Bind: []interface{}{
			app,
			dbService.ChatSessions,
			dbService.ProjectSettings,
			dbService.ModelConfigs,
			chatService,
			workspaceService,
			keyringService,
		},
	})

	if err != nil {
		println("Error:", err.Error())
	}
}
