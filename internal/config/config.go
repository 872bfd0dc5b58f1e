package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"tabcompare-service/internal/compare/model"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	MaxUploadMB  int
	LogFile      string

	// общий лимит запросов; 0 выключает
	RateLimitRPS   float64
	RateLimitBurst int

	// дефолты сравнения, если форма их не прислала
	Defaults     model.Options
	DecimalComma bool
}

func Load() Config {
	port, _ := strconv.Atoi(getenv("PORT", "8082"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "256"))
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	return Config{
		Host:         getenv("HOST", "127.0.0.1"),
		Port:         port,
		AllowOrigins: origins,
		LogLevel:     getenv("LOG_LEVEL", "info"),
		MaxUploadMB:  mb,
		LogFile:      getenv("LOG_FILE", "logs/tabcompare-service.log"),

		RateLimitRPS:   ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 0),
		RateLimitBurst: ParseInt(os.Getenv("RATE_LIMIT_BURST"), 5),

		Defaults: model.Options{
			IgnoreCase:       ParseBool(os.Getenv("DEFAULT_IGNORE_CASE"), true),
			IgnoreWhitespace: ParseBool(os.Getenv("DEFAULT_IGNORE_WHITESPACE"), true),
			NumericTolerance: ParseFloat(os.Getenv("DEFAULT_NUMERIC_TOLERANCE"), 0),
		},
		DecimalComma: ParseBool(os.Getenv("DECIMAL_COMMA"), false),
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// ParseBool accepts the usual checkbox spellings; anything else yields def.
func ParseBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func ParseFloat(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

func ParseInt(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return i
}
