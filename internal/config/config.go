package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 项目运行配置，通过 APP_ENV 区分 development / production
type Config struct {
	Env  string `mapstructure:"env"`
	Addr string `mapstructure:"addr"`

	MySQLDSN string `mapstructure:"mysql_dsn"`

	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	// session 与业务缓存分库存储
	SessionRedisDB int `mapstructure:"session_redis_db"`

	// session 签名秘钥与绝对过期时长（秒）
	SecretKey       string `mapstructure:"secret_key"`
	SessionLifetime int    `mapstructure:"session_lifetime"`

	LogLevel string `mapstructure:"log_level"`
	LogPath  string `mapstructure:"log_path"`

	SentryDSN    string `mapstructure:"sentry_dsn"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// 云通讯短信网关
	SMSAccountSID string `mapstructure:"sms_account_sid"`
	SMSAuthToken  string `mapstructure:"sms_auth_token"`
	SMSAppID      string `mapstructure:"sms_app_id"`
	SMSServerURL  string `mapstructure:"sms_server_url"`

	// 图片存储目录及对外访问前缀
	StoragePath   string `mapstructure:"storage_path"`
	StoragePrefix string `mapstructure:"storage_prefix"`
}

// SessionTTL session 绝对过期时长
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionLifetime) * time.Second
}

// Development 是否开发模式
func (c *Config) Development() bool { return c.Env != "production" }

// Load 读取配置：默认值 -> 可选的 yaml 文件 -> 环境变量覆盖
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("env", "development")
	v.SetDefault("addr", ":5000")
	v.SetDefault("mysql_dsn", "xinjin:xinjin@tcp(127.0.0.1:3306)/xinjin?charset=utf8mb4&parseTime=True&loc=Local")
	v.SetDefault("redis_addr", "127.0.0.1:6379")
	v.SetDefault("redis_db", 0)
	v.SetDefault("session_redis_db", 1)
	v.SetDefault("secret_key", "SALKDJALKDJALKSJDLASKDJLK")
	v.SetDefault("session_lifetime", 86400)
	v.SetDefault("log_level", "debug")
	v.SetDefault("sms_server_url", "https://app.cloopen.com:8883")
	v.SetDefault("storage_path", "uploads")
	v.SetDefault("storage_prefix", "/static/uploads/")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./conf")
	if err := v.ReadInConfig(); err != nil {
		// 配置文件可选，缺失时仅依赖默认值与环境变量
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 线上模式默认只记录错误日志，与开发模式区分
	if !cfg.Development() && cfg.LogLevel == "debug" {
		cfg.LogLevel = "error"
	}
	return &cfg, nil
}
