package services

import (
	"path/filepath"
	"testing"

	"littlelemon-api/config"
	"littlelemon-api/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string, isStaff bool, groups ...string) *models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		IsStaff:      isStaff,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	for _, name := range groups {
		var g models.Group
		if err := db.Where("name = ?", name).First(&g).Error; err != nil {
			t.Fatalf("group %s not seeded: %v", name, err)
		}
		if err := db.Model(&user).Association("Groups").Append(&g); err != nil {
			t.Fatalf("add %s to %s: %v", username, name, err)
		}
	}
	if err := db.Preload("Groups").First(&user, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	return &user
}

func createMenuItem(t *testing.T, db *gorm.DB, title, price string) *models.MenuItem {
	t.Helper()
	item := models.MenuItem{
		Title: title,
		Price: decimal.RequireFromString(price),
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create menu item %s: %v", title, err)
	}
	return &item
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	return decimal.RequireFromString(s)
}
