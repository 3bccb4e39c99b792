package main

import (
	"log"
	"os"

	"anantara-be/internal/constant"
	"anantara-be/internal/entity"
	"anantara-be/internal/model"
	"anantara-be/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	seedAdminUser(db)
	seedDefaultSettings(db)

	log.Println("✅ Seed completed.")
}

func seedAdminUser(db *gorm.DB) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("Info: ADMIN_EMAIL / ADMIN_PASSWORD not set, skipping admin user")
		return
	}

	var count int64
	db.Model(&model.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Printf("Info: Admin user %s already exists, skipping", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: Failed to hash admin password: %v", err)
	}

	admin := model.User{
		Email:              email,
		Name:               "Administrador",
		PasswordHash:       string(hash),
		SubscriptionPlan:   "ilimitado",
		SubscriptionStatus: "active",
		IsAdmin:            true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Error: Failed to create admin user: %v", err)
	}
	log.Printf("Created admin user %s", email)
}

func seedDefaultSettings(db *gorm.DB) {
	settings := []model.AdminSetting{
		{Type: entity.SettingBasePrompt, Content: constant.DefaultPersonaPrompt},
		{Type: entity.SettingSupportDocument, Content: constant.DefaultSupportDocument},
	}

	for _, setting := range settings {
		// Keep existing content: admins may have edited it.
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "type"}},
			DoNothing: true,
		}).Create(&setting).Error
		if err != nil {
			log.Printf("Warn: Failed to seed setting %s: %v", setting.Type, err)
			continue
		}
		log.Printf("Seeded setting %s", setting.Type)
	}
}
