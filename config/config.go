package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var loadEnvOnce sync.Once

// Config đọc biến môi trường, tự động load file .env lần đầu tiên
func Config(key string) string {
	loadEnvOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Không tìm thấy file .env, dùng biến môi trường hệ thống...")
		}
	})
	return os.Getenv(key)
}

// ConfigOr đọc biến môi trường, trả về giá trị mặc định nếu không có
func ConfigOr(key, fallback string) string {
	if v := Config(key); v != "" {
		return v
	}
	return fallback
}
