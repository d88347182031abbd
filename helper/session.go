package helper

import (
	"errors"
	"fmt"
	"time"

	"cinema_retail/config"

	"github.com/golang-jwt/jwt/v5"
)

// Phiên đặt vé là token ẩn danh — thứ duy nhất client được giữ qua reload.
// Toàn bộ giỏ hàng sống trong bộ nhớ server theo sessionId, mất là chọn lại.

const SessionTokenTTL = 12 * time.Hour

func jwtSecret() []byte {
	return []byte(config.ConfigOr("JWT_SECRET", "cinema-retail-dev-secret"))
}

func GenerateSessionToken(sessionID string) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["sessionId"] = sessionID
	claims["exp"] = time.Now().Add(SessionTokenTTL).Unix()

	return token.SignedString(jwtSecret())
}

func ParseSessionToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Chỉ chấp nhận HMAC
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("token không hợp lệ")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("token không hợp lệ")
	}
	sessionID, _ := claims["sessionId"].(string)
	if sessionID == "" {
		return "", errors.New("token thiếu sessionId")
	}
	return sessionID, nil
}
