package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/gmsim/api-server/pkg/kvstore"

	"github.com/dgrijalva/jwt-go"
	"gorm.io/gorm"
)

type AuthService struct {
	KV     kvstore.KVStore
	DB     *gorm.DB
	Secret string
}

func New(kv kvstore.KVStore, db *gorm.DB, secret string) *AuthService {
	return &AuthService{
		KV:     kv,
		DB:     db,
		Secret: secret,
	}
}

// Login checks credentials and hands out a whitelisted JWT. A user can
// hold several live tokens, one per device.
func (a *AuthService) Login(loginDetails LoginRequestBody) (string, error) {
	var user Users
	err := a.DB.Table("users").Select("user_name, password, user_id").Where("user_name = ?", loginDetails.UserName).First(&user).Error
	if err != nil {
		return "", err
	}

	if user.Password != loginDetails.Password {
		return "", errors.New("invalid credentials")
	}

	token, err := a.GenerateToken(user.UserID)
	if err != nil {
		return "", err
	}

	err = a.KV.HSet("session_tokens_"+fmt.Sprintf("%d", user.UserID), token, "1")
	if err != nil {
		return "", err
	}
	return token, nil
}

func (a *AuthService) SignUp(signUpDetails SignUpRequestBody) error {
	var count int64
	err := a.DB.Table("users").Where("mail_id = ?", signUpDetails.MailID).Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("user already exists")
	}

	return a.DB.Table("users").Create(&Users{
		UserName: signUpDetails.UserName,
		MailID:   signUpDetails.MailID,
		Password: signUpDetails.Password,
	}).Error
}

func (a *AuthService) GenerateToken(userID int) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour * 72).Unix(),
	})

	return token.SignedString([]byte(a.Secret))
}

func (a *AuthService) ValidateToken(tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(a.Secret), nil
	})
	if err != nil {
		return 0, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return int(claims["user_id"].(float64)), nil
	}

	return 0, errors.New("invalid token")
}

// RevokeToken drops the token from the whitelist so it stops working
// even before it expires.
func (a *AuthService) RevokeToken(userID int, tokenString string) error {
	return a.KV.HDel("session_tokens_"+fmt.Sprintf("%d", userID), tokenString)
}

func (a *AuthService) CheckIfTokenIsWhiteListed(userID int, tokenString string) bool {
	_, err := a.KV.HGet("session_tokens_"+fmt.Sprintf("%d", userID), tokenString)
	return err == nil
}
