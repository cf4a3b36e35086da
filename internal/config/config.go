package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Settings struct {
	ServerPort       int
	UploadRoot       string
	PublicBaseURL    string
	RedisAddr        string
	RedisPassword    string
	MaxUploadBytes   int64
	SizeLimits       map[string]int64
	ResponsiveWidths []int
	CacheTTL         time.Duration
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	if !viper.IsSet("UPLOAD_ROOT") {
		return nil, fmt.Errorf("UPLOAD_ROOT is required")
	}
	if !viper.IsSet("PUBLIC_BASE_URL") {
		return nil, fmt.Errorf("PUBLIC_BASE_URL is required")
	}
	if !viper.IsSet("SERVER_PORT") {
		return nil, fmt.Errorf("SERVER_PORT is required")
	}

	viper.SetDefault("CACHE_TTL", 300)

	sizeLimits, err := parseSizeLimits(viper.GetString("SIZE_LIMITS"))
	if err != nil {
		return nil, err
	}
	widths, err := parseWidths(viper.GetString("RESPONSIVE_WIDTHS"))
	if err != nil {
		return nil, err
	}

	return &Settings{
		ServerPort:       viper.GetInt("SERVER_PORT"),
		UploadRoot:       viper.GetString("UPLOAD_ROOT"),
		PublicBaseURL:    viper.GetString("PUBLIC_BASE_URL"),
		RedisAddr:        viper.GetString("REDIS_ADDR"),
		RedisPassword:    viper.GetString("REDIS_PASSWORD"),
		MaxUploadBytes:   viper.GetInt64("MAX_UPLOAD_BYTES"),
		SizeLimits:       sizeLimits,
		ResponsiveWidths: widths,
		CacheTTL:         time.Duration(viper.GetInt("CACHE_TTL")) * time.Second,
	}, nil
}

// parseSizeLimits reads per-category ceilings from a
// "category=bytes,category=bytes" string.
func parseSizeLimits(raw string) (map[string]int64, error) {
	limits := make(map[string]int64)
	if raw == "" {
		return limits, nil
	}
	for _, pair := range strings.Split(raw, ",") {
		category, val, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || category == "" {
			return nil, fmt.Errorf("SIZE_LIMITS entry %q is not category=bytes", pair)
		}
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("SIZE_LIMITS entry %q has an invalid byte count", pair)
		}
		limits[category] = n
	}
	return limits, nil
}

func parseWidths(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	widths := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("RESPONSIVE_WIDTHS entry %q is not a positive integer", p)
		}
		widths = append(widths, n)
	}
	return widths, nil
}
