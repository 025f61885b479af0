package main

import (
	"context"
	nethttp "net/http"
	_ "net/http/pprof"

	_ "github.com/grafana/pyroscope-go/godeltaprof/http/pprof"

	"github.com/mileusna/crontab"
	"pantrypal.app/pantry-api-gateway/app/domain/cron"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/database"
	apphttp "pantrypal.app/pantry-api-gateway/app/interfaces/http"
	"pantrypal.app/pantry-api-gateway/app/utils/logger"
	"pantrypal.app/pantry-api-gateway/config"
	"pantrypal.app/pantry-api-gateway/config/environment_variables"
)

type Application struct {
	HttpServer  *apphttp.HttpServer
	CronService *cron.CronService
}

func (application *Application) Start() {
	logger.GetLogger().Infof("starting %s %s (%s)", config.ServiceName, config.Version, config.Commit)
	cronTab := crontab.New()
	background := context.Background()
	application.CronService.Start(background, cronTab)

	if err := application.HttpServer.Run(); err != nil {
		panic(err)
	}
}

func init() {
	logger.GetLogger()
	environment_variables.EnvironmentVariables.LoadFromEnv()
}

// @title Pantry API Gateway
// @version 1.0
// @description Pantry, recipe and expiry tracking API for the PantryPal apps.
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and a Firebase ID token.
func main() {
	background := context.Background()

	// pprof for Pyroscope pull mode
	go func() {
		if err := nethttp.ListenAndServe("0.0.0.0:6060", nil); err != nil {
			logger.GetLogger().Errorf("pprof server failed: %v", err)
		}
	}()

	application, err := CreateApplication()
	if err != nil {
		panic(err)
	}
	err = database.Migration()
	if err != nil {
		panic(err)
	}
	dataInitializer, err := CreateDataInitializer()
	if err != nil {
		panic(err)
	}
	err = dataInitializer.Install(background)
	if err != nil {
		panic(err)
	}
	application.Start()
}
