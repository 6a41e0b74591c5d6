package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/diacare/backend/internal/models"
	"github.com/diacare/backend/internal/types"
)

// Token lifetimes.
const (
	SessionTTL       = 24 * time.Hour
	PasswordResetTTL = time.Hour
)

// AuthService handles accounts, sessions and password changes.
type AuthService struct {
	db        *gorm.DB
	store     TokenStore
	mailer    Mailer
	jwtSecret []byte
	resetURL  string
	log       zerolog.Logger
	now       func() time.Time
}

// NewAuthService creates an AuthService. resetURL is the page that receives
// the reset token as its "token" query parameter.
func NewAuthService(db *gorm.DB, store TokenStore, mailer Mailer, jwtSecret, resetURL string, log zerolog.Logger) *AuthService {
	return &AuthService{
		db:        db,
		store:     store,
		mailer:    mailer,
		jwtSecret: []byte(jwtSecret),
		resetURL:  resetURL,
		log:       log.With().Str("component", "auth").Logger(),
		now:       time.Now,
	}
}

// Register creates a user with its profile and logs them in.
func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*models.User, string, error) {
	email := normalizeEmail(req.Email)
	username := strings.TrimSpace(req.Username)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}

	age, _ := req.Age.Int()
	weight, _ := req.Weight.Float()
	height, _ := req.Height.Float()
	profile := models.Profile{
		ID:                  uuid.New(),
		UserID:              user.ID,
		Phone:               strings.TrimSpace(req.Phone),
		Age:                 age,
		Weight:              weight,
		Height:              height,
		Sex:                 strings.ToLower(req.Sex),
		ActivityLevel:       strings.ToLower(req.ActivityLevel),
		DietaryRestrictions: models.JSONBStringArray{},
	}
	applyEnergy(&profile)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}
		if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUsernameTaken
		}

		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.GenerateToken(&user)
	if err != nil {
		return nil, "", err
	}

	if err := s.mailer.SendWelcome(&user); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("failed to send welcome email")
	}
	s.log.Info().Str("user_id", user.ID.String()).Msg("user registered")
	return &user, token, nil
}

// Login checks the credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateToken(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// GenerateToken signs a session token for user.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := s.now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
		UserID:   user.ID,
		Username: user.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses tokenString and rejects revoked sessions.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == uuid.Nil || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	revoked, err := s.store.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Logout revokes the session until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, claims *types.TokenClaims) error {
	ttl := SessionTTL
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(s.now())
	}
	return s.store.Revoke(ctx, claims.ID, ttl)
}

// ForgotPassword mails a single-use reset link. Unknown addresses succeed
// silently.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Info().Msg("password reset requested for unknown email")
			return nil
		}
		return err
	}

	token, err := newResetToken()
	if err != nil {
		return err
	}
	if err := s.store.SaveResetToken(ctx, token, user.ID, PasswordResetTTL); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordReset(&user, s.resetLink(token)); err != nil {
		return err
	}
	s.log.Info().Str("user_id", user.ID.String()).Msg("password reset mailed")
	return nil
}

// ResetPassword consumes a reset token and sets the new password.
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	userID, err := s.store.ConsumeResetToken(ctx, token)
	if err != nil {
		return err
	}
	if err := s.ChangePassword(ctx, userID, password); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	return nil
}

// ChangePassword replaces the password hash of userID.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("password_hash", string(hash))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.log.Info().Str("user_id", userID.String()).Msg("password changed")
	return nil
}

func (s *AuthService) resetLink(token string) string {
	u, err := url.Parse(s.resetURL)
	if err != nil || s.resetURL == "" {
		return token
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String()
}

func newResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
