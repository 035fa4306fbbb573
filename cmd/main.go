package main

import (
	"log"

	"github.com/lareinaLY/baby-meal-recommendation/config"
	"github.com/lareinaLY/baby-meal-recommendation/routes"
	"github.com/lareinaLY/baby-meal-recommendation/utils"
)

func main() {
	cfg := config.Load()
	config.InitDB()

	if err := utils.InitMailer(); err != nil {
		log.Printf("mailer disabled: %v", err)
	}

	r := routes.SetupRouter(cfg)
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
