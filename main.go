package main

import (
	"log"
	"os"
	"time"

	"surv/config"
	"surv/controllers"
	dbpkg "surv/db"
	"surv/router"
	"surv/tools"
	"surv/workers"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := "config/config.json"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	cfg := config.Get(configPath)

	dbpkg.SetConfigurations(cfg)
	database, err := dbpkg.Connect()
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	controllers.SetJWTSecret(cfg.Security.JwtSecret)
	controllers.SetSMSSender(tools.TwilioClient{
		AccountSID: cfg.Twilio.AccountSID,
		AuthToken:  cfg.Twilio.AuthToken,
		FromNumber: cfg.Twilio.PhoneNumber,
	})

	workers.StartRecurringJobGenerator(
		database,
		time.Duration(cfg.Scheduler.GenerateIntervalMinutes)*time.Minute,
		cfg.Scheduler.HorizonDays,
	)

	r := gin.New()
	r.Use(dbpkg.SetDBtoContext(database))
	router.Initialize(r)

	log.Printf("Surv API listening on :%s", cfg.ApiPort)
	if err := r.Run(":" + cfg.ApiPort); err != nil {
		log.Fatal(err)
	}
}
