package config

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

var loadOnce sync.Once

// Config đọc biến môi trường theo key (load .env 1 lần duy nhất)
func Config(key string) string {
	loadOnce.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("Không tìm thấy file .env, dùng biến môi trường hệ thống")
		}
	})
	return os.Getenv(key)
}

// ConfigInt đọc biến môi trường dạng số, trả về fallback nếu thiếu/sai
func ConfigInt(key string, fallback int) int {
	v := Config(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Giá trị %s không hợp lệ (%s), dùng mặc định %d", key, v, fallback)
		return fallback
	}
	return n
}
