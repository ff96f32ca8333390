package main

import (
	"flag"
	"log"

	"photo-hunt/internal/config"
	"photo-hunt/internal/db"
)

func main() {
	filePath := flag.String("file", "keywords.csv", "path to keywords csv (text,points)")
	code := flag.String("code", "", "game code to load keywords into")
	flag.Parse()

	if *code == "" {
		log.Fatal("game code is required")
	}
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}

	conn, err := db.Open(config.Load())
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	var game db.Game
	if err := conn.Where("code = ?", *code).First(&game).Error; err != nil {
		log.Fatalf("game %q not found: %v", *code, err)
	}

	inserted, err := db.LoadKeywords(conn, game.ID, *filePath)
	if err != nil {
		log.Fatalf("failed to load keywords: %v", err)
	}
	log.Printf("loaded %d keywords game_id=%d code=%s", inserted, game.ID, game.Code)
}
