package config

import (
	"encoding/json"
	"log"
	"os"
)

type Configuration struct {
	ApiPort string `json:"api_port"`
	LogPath string `json:"log_path"`

	Database string `json:"database"` // "sqlite3" or "postgres"
	DbHost   string `json:"db_host"`
	DbPort   string `json:"db_port"`
	DbUser   string `json:"db_user"`
	DbName   string `json:"db_name"`
	DbPass   string `json:"db_pass"`

	Security struct {
		JwtSecret string `json:"jwt_secret"`
	} `json:"security"`

	Twilio struct {
		AccountSID  string `json:"account_sid"`
		AuthToken   string `json:"auth_token"`
		PhoneNumber string `json:"phone_number"`
	} `json:"twilio"`

	Scheduler struct {
		HorizonDays             int `json:"horizon_days"`
		GenerateIntervalMinutes int `json:"generate_interval_minutes"`
	} `json:"scheduler"`
}

func Get(path string) Configuration {
	b, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	var c Configuration
	if err := json.Unmarshal(b, &c); err != nil {
		log.Fatal(err)
	}

	// defaults
	if c.ApiPort == "" {
		c.ApiPort = "8080"
	}
	if c.LogPath == "" {
		c.LogPath = "logs/server.log"
	}
	if c.Database == "" {
		c.Database = "sqlite3"
	}
	if c.Security.JwtSecret == "" {
		c.Security.JwtSecret = "CHANGE_ME"
	}
	if c.Scheduler.HorizonDays <= 0 {
		c.Scheduler.HorizonDays = 30
	}
	if c.Scheduler.GenerateIntervalMinutes <= 0 {
		c.Scheduler.GenerateIntervalMinutes = 60
	}

	return c
}
