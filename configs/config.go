package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBDriver       string
	DBSource       string
	DBMaxOpenConns int
	DBMaxIdleConns int
	DBTimeout      time.Duration

	JWTSecret string
	JWTTTL    time.Duration

	CORSOrigins []string
	AreasFile   string
	AreaStrict  bool

	SeedDemo      bool
	AdminEmail    string
	AdminPassword string
}

// LoadConfig อ่าน .env (ถ้ามี) แล้วตามด้วย env จริง
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("ℹ️ no .env file, using process environment")
	}

	return &Config{
		Port:           getEnv("PORT", "8000"),
		DBDriver:       getEnv("DB_DRIVER", "sqlite"),
		DBSource:       getEnv("DB_SOURCE", "bencana.db"),
		DBMaxOpenConns: getInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns: getInt("DB_MAX_IDLE_CONNS", 5),
		DBTimeout:      getDuration("DB_TIMEOUT", 5*time.Second),
		JWTSecret:      getEnv("JWT_SECRET", "changeme"),
		JWTTTL:         getDuration("JWT_TTL", 7*24*time.Hour),
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "*")),
		AreasFile:      getEnv("AREAS_FILE", ""),
		AreaStrict:     getBool("AREA_STRICT", true),
		SeedDemo:       getBool("SEED_DEMO", false),
		AdminEmail:     getEnv("ADMIN_EMAIL", ""),
		AdminPassword:  getEnv("ADMIN_PASSWORD", ""),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// MustGetEnv ใช้กับค่าที่ไม่มี default ที่สมเหตุสมผล (เช่น DSN ของ cmd/migrate)
func MustGetEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing env: %s", key)
	}
	return v
}
