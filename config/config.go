package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP
	Host string
	Port string

	// TON deposits
	TonWebhookSecret string
	TonAPIBaseURL    string
	TonAPIKey        string
	PlatformWallet   string
	USDTJettonMaster string
	PointsPerUSDT    float64

	// Ledger
	DefaultCashbackRate float64
	MaxTxnAmount        float64
}

func Load() Config {
	return Config{
		Host: getEnv("HOST", "127.0.0.1"),
		Port: getEnv("PORT", "3000"),

		TonWebhookSecret: getEnv("TON_WEBHOOK_SECRET", ""),
		TonAPIBaseURL:    strings.TrimSuffix(getEnv("TONAPI_BASE_URL", "https://tonapi.io/v2"), "/"),
		TonAPIKey:        getEnv("TONAPI_API_KEY", ""),
		PlatformWallet:   getEnv("PLATFORM_WALLET", ""),
		USDTJettonMaster: getEnv("USDT_JETTON_MASTER", ""),
		PointsPerUSDT:    getEnvFloat("POINTS_PER_USDT", 100),

		DefaultCashbackRate: getEnvFloat("DEFAULT_CASHBACK_RATE", 0.05),
		MaxTxnAmount:        getEnvFloat("MAX_TXN_AMOUNT", 1_000_000),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
