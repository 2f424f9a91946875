package models

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %s", err)
	}
	if err := db.AutoMigrate(
		&User{},
		&Session{},
		&Project{},
		&Collaborator{},
		&Idea{},
		&ProjectFile{},
		&Roadmap{},
	); err != nil {
		log.Fatalf("failed to auto migrate: %s", err)
	}
	DB = db
}
