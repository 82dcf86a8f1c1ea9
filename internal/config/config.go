package config // package config loads application configuration from the environment

import (
	"log"     // log reports configuration problems
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable; a .env file in the working directory is read
// first when present.
type Config struct {
	Env          string        // application environment (e.g. "dev", "prod")
	Addr         string        // host:port the API listens on; loopback by default
	StorePath    string        // path of the SQLite store file
	SettingsPath string        // path of the YAML user settings file
	JWTSecret    string        // secret used to sign session tokens
	AccessTTLMin int           // session token time-to-live in minutes
	BcryptCost   int           // bcrypt cost for passphrase hashing
	MinSeatArea  float64       // smallest rectangle accepted as a seat, in square pixels
	AMQPURL      string        // broker for seat.assigned events; empty disables publishing
	ShutdownWait time.Duration // grace period for in-flight requests on shutdown
}

// Load reads configuration values from the environment and returns a
// Config.  Unset variables fall back to defaults suitable for a desktop
// install; commands check the values they need themselves.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Println("config: loaded .env")
	}
	return Config{
		Env:          envStr("APP_ENV", "dev"),
		Addr:         envStr("APP_ADDR", "127.0.0.1:7420"),
		StorePath:    os.Getenv("STORE_PATH"),
		SettingsPath: envStr("SETTINGS_PATH", "seatplan.yaml"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		AccessTTLMin: envInt("ACCESS_TOKEN_TTL_MIN", 720),
		BcryptCost:   envInt("BCRYPT_COST", 10),
		MinSeatArea:  envFloat("MIN_SEAT_AREA", 512),
		AMQPURL:      amqpURL(),
		ShutdownWait: envDur("SHUTDOWN_WAIT", 5*time.Second),
	}
}

// amqpURL prefers RABBITMQ_URL and falls back to AMQP_URL.
func amqpURL() string {
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		return v
	}
	return os.Getenv("AMQP_URL")
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	log.Printf("config: invalid int for %s: %q, using %d", k, v, d)
	return d
}

func envFloat(k string, d float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	log.Printf("config: invalid number for %s: %q, using %v", k, v, d)
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
