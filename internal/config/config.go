package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the storefront needs at startup. All values come
// from the environment, optionally seeded from a .env file.
type Config struct {
	App struct {
		Port string
	}
	Discount struct {
		// Percent is the flat discount applied when a valid code is used.
		Percent int64
		// RewardEveryNOrders controls automatic code issuance: a user gets a
		// personal code after every Nth completed order.
		RewardEveryNOrders int
	}
}

func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := &Config{}
	cfg.App.Port = getEnv("APP_PORT", "8080")

	percent, err := getEnvInt("DISCOUNT_PERCENT", 10)
	if err != nil {
		return nil, err
	}
	if percent < 0 || percent > 100 {
		return nil, fmt.Errorf("DISCOUNT_PERCENT must be between 0 and 100, got %d", percent)
	}
	cfg.Discount.Percent = int64(percent)

	everyN, err := getEnvInt("REWARD_EVERY_N_ORDERS", 3)
	if err != nil {
		return nil, err
	}
	if everyN <= 0 {
		return nil, fmt.Errorf("REWARD_EVERY_N_ORDERS must be positive, got %d", everyN)
	}
	cfg.Discount.RewardEveryNOrders = everyN

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}
