package config

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"hms-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hms_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// ConnectDatabase opens the pooled connection, migrates the schema and
// seeds reference data. The pool replaces the old one-connection
// singleton: concurrent requests each get their own session and the
// transactional operations rely on the store's isolation.
func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	DB = db

	if err := Migrate(DB); err != nil {
		return err
	}

	SeedDatabase(DB)
	return nil
}

// Migrate runs AutoMigrate in parent->child order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Admin{},
		&models.HotelSetting{},
		&models.RoomType{},
		&models.Room{},
		&models.Reservation{},
		&models.Invoice{},
		&models.Charge{},
		&models.Payment{},
		&models.InventoryItem{},
		&models.InventoryLog{},
	)
}

// SeedDatabase inserts the default admin and starter catalog when the
// tables are empty. Safe to run on every boot.
func SeedDatabase(db *gorm.DB) {
	// ---------------- Admin ----------------
	var adminCount int64
	db.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		password := envOrDefault("ADMIN_PASSWORD", "admin123")
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.Admin{
				FullName: "Admin User",
				Username: "admin@hotel.local",
				Password: string(hash),
			}
			if err := db.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	// ---------------- RoomTypes ----------------
	var rtCount int64
	db.Model(&models.RoomType{}).Count(&rtCount)
	if rtCount == 0 {
		amenities := func(names ...string) datatypes.JSON {
			raw, _ := json.Marshal(names)
			return datatypes.JSON(raw)
		}
		roomTypes := []models.RoomType{
			{TypeName: "Standard", Description: "Standard Room", BaseRate: 100, MaxGuests: 2,
				Amenities: amenities("WiFi", "TV")},
			{TypeName: "Superior", Description: "Superior Room", BaseRate: 150, MaxGuests: 3,
				Amenities: amenities("WiFi", "TV", "Minibar")},
			{TypeName: "Deluxe", Description: "Deluxe Room", BaseRate: 220, MaxGuests: 4,
				Amenities: amenities("WiFi", "TV", "Minibar", "Bathtub")},
			{TypeName: "Suite", Description: "Suite with separate living area", BaseRate: 350, MaxGuests: 5,
				Amenities: amenities("WiFi", "TV", "Minibar", "Bathtub", "Kitchenette")},
		}
		if err := db.Create(&roomTypes).Error; err != nil {
			log.Printf("warning: failed to seed room types: %v", err)
		} else {
			log.Println("RoomTypes seeded")
		}
	}

	// ---------------- Rooms ----------------
	var roomCount int64
	db.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		var types []models.RoomType
		db.Order("id ASC").Find(&types)
		if len(types) > 0 {
			var rooms []models.Room
			number := 101
			for floor := 1; floor <= 2; floor++ {
				for i := 0; i < len(types); i++ {
					typeID := types[i].ID
					rooms = append(rooms, models.Room{
						RoomNumber: fmt.Sprintf("%d", number),
						RoomTypeID: &typeID,
						Floor:      fmt.Sprintf("%d", floor),
						Status:     models.RoomAvailable,
					})
					number++
				}
				number = floor*100 + 101
			}
			if err := db.Create(&rooms).Error; err != nil {
				log.Printf("warning: failed to seed rooms: %v", err)
			} else {
				log.Println("Rooms seeded")
			}
		}
	}

	// ---------------- Hotel profile ----------------
	var settingCount int64
	db.Model(&models.HotelSetting{}).Count(&settingCount)
	if settingCount == 0 {
		setting := models.HotelSetting{Name: "My Hotel"}
		if err := db.Create(&setting).Error; err != nil {
			log.Printf("warning: failed to seed hotel settings: %v", err)
		}
	}
}
