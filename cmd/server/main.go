package main

import (
	"log"

	appfx "github.com/kimjiho/fxbrief/internal/fx"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[Main] No .env file found, using environment variables")
	}

	app := fx.New(
		appfx.ConfigModule,
		appfx.ScraperModule,
		appfx.FinanceModule,
		appfx.AIModule,
		appfx.SearchModule,
		appfx.CacheModule,
		appfx.CoreModule,
		appfx.DigestModule,
		appfx.ServerModule,

		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ConsoleLogger{W: log.Writer()}
		}),
	)

	app.Run()
}
