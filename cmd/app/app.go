package main

import (
	"os"

	"github.com/profibuy/storefront/internal/app"
	config "github.com/profibuy/storefront/internal/cfg"
	"github.com/profibuy/storefront/pkg/logger"
)

// @title			MegaShop storefront
// @version		1.0
// @description	Витрина и админка MegaShop: сессии, корзина, оформление заказа, прокси к бэкенду.
// @BasePath		/
func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
