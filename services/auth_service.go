package services

import (
	"errors"
	"strings"

	"hms-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is deliberately vague: callers must not learn
// whether the username or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid_credentials")

type AuthService struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db}
}

// Authenticate checks the bcrypt hash and returns the admin on success.
func (s *AuthService) Authenticate(username, password string) (*models.Admin, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var admin models.Admin
	err := s.DB.Where("LOWER(username) = ?", username).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, wrapDBErr(err, "lookup admin")
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &admin, nil
}
