package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type Log struct {
	Level string
	JSON  bool
}

// Auth 外部身份令牌的校验参数（HS256）
type Auth struct {
	TokenSecret string `mapstructure:"token_secret"`
	Issuer      string `mapstructure:"issuer"`
	TokenTTLMin int    `mapstructure:"token_ttl_min"`
}

type Redis struct {
	Enable   bool   `mapstructure:"enable"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTLSec   int    `mapstructure:"ttl_sec"`
}

type DB struct {
	Driver             string
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type CORS struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type RateLimit struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// Seed 种子管理员（cmd/seed 用）
type Seed struct {
	AdminEmail string `mapstructure:"admin_email"`
	AdminName  string `mapstructure:"admin_name"`
}

type Config struct {
	App       App
	Log       Log
	Auth      Auth `mapstructure:"auth"`
	DB        DB
	Redis     Redis     `mapstructure:"redis"`
	CORS      CORS      `mapstructure:"cors"`
	RateLimit RateLimit `mapstructure:"ratelimit"`
	Seed      Seed      `mapstructure:"seed"`
}

func Load(path string) *Config {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config: %v", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	return &c
}
