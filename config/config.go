package config

import (
	"log"
	"os"

	"littlelemon-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "little_lemon_super_secret_2024"))

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB() {
	var err error
	DB, err = gorm.Open(sqlite.Open(getEnv("DB_PATH", "littlelemon.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("Database connected and migrated successfully")
}

// Migrate runs the schema migration and seeds the two role groups.
// Split out from InitDB so tests can point it at their own database.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Category{},
		&models.MenuItem{},
		&models.CartLine{},
		&models.Order{},
		&models.OrderLine{},
		&models.Reservation{},
	)
	if err != nil {
		return err
	}

	// get-or-create the role groups
	for _, name := range []string{models.GroupManager, models.GroupDeliveryCrew} {
		var g models.Group
		if err := db.Where(models.Group{Name: name}).FirstOrCreate(&g).Error; err != nil {
			return err
		}
	}
	return nil
}
