package config

import (
	"errors"
	"log"
	"os"

	"github.com/spf13/viper"
)

// Config 全局配置结构体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	XHS      XHSConfig      `mapstructure:"xhs"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	OSS      OSSConfig      `mapstructure:"oss"`
	App      AppConfig      `mapstructure:"app"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// XHSConfig 平台接口配置
type XHSConfig struct {
	Cookie     string  `mapstructure:"cookie"`       // 登录后的 Cookie 串
	BaseURL    string  `mapstructure:"base_url"`     // 接口域名
	UserAgent  string  `mapstructure:"user_agent"`   // 请求 UA
	RatePerSec float64 `mapstructure:"rate_per_sec"` // 对平台的请求速率
	Burst      int     `mapstructure:"burst"`
	TimeoutSec int     `mapstructure:"timeout_sec"` // 单次请求超时
}

// StorageConfig 落盘路径配置
type StorageConfig struct {
	MediaPath string `mapstructure:"media_path"` // 图片/视频保存目录
	ExcelPath string `mapstructure:"excel_path"` // 表格导出目录
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Port     string `mapstructure:"port"`
	SSLMode  string `mapstructure:"sslmode"`
	TimeZone string `mapstructure:"timezone"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Expire int64  `mapstructure:"expire"` // 小时
}

type OSSConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	BucketName      string `mapstructure:"bucket_name"`
	Prefix          string `mapstructure:"prefix"`
}

type AppConfig struct {
	Env   string `mapstructure:"env"`
	Debug bool   `mapstructure:"debug"`
}

var GlobalConfig Config

// Validate 验证配置
func (c *Config) Validate() error {
	if c.XHS.Cookie == "" {
		return errors.New("xhs cookie is required, copy it from a logged-in browser session")
	}
	if c.Storage.MediaPath == "" || c.Storage.ExcelPath == "" {
		return errors.New("storage paths are incomplete")
	}
	if c.Database.Host == "" || c.Database.User == "" || c.Database.DBName == "" {
		return errors.New("database configuration is incomplete")
	}
	if c.Redis.Addr == "" {
		return errors.New("redis address is required")
	}
	if c.JWT.Secret == "" || len(c.JWT.Secret) < 32 {
		return errors.New("JWT secret should be at least 32 characters")
	}
	if c.OSS.Enabled && (c.OSS.Endpoint == "" || c.OSS.BucketName == "") {
		return errors.New("oss is enabled but endpoint/bucket is missing")
	}
	return nil
}

// LoadConfig 加载配置
func LoadConfig() {
	// 获取环境变量，默认为dev
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	// 根据环境选择配置文件
	configName := "config"
	if env != "" && env != "dev" {
		configName = "config." + env
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	// 设置默认值
	viper.SetDefault("server.port", "5001")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("xhs.base_url", "https://edith.xiaohongshu.com")
	viper.SetDefault("xhs.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36")
	viper.SetDefault("xhs.rate_per_sec", 2.0)
	viper.SetDefault("xhs.burst", 1)
	viper.SetDefault("xhs.timeout_sec", 20)
	viper.SetDefault("storage.media_path", "./datas/media_datas")
	viper.SetDefault("storage.excel_path", "./datas/excel_datas")
	viper.SetDefault("jwt.expire", 24)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("app.env", "dev")
	viper.SetDefault("app.debug", true)

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}

	if err := viper.Unmarshal(&GlobalConfig); err != nil {
		log.Fatalf("Failed to unmarshal config: %v", err)
	}

	// 环境变量优先于配置文件，便于容器部署时注入 Cookie
	if cookie := os.Getenv("XHS_COOKIE"); cookie != "" {
		GlobalConfig.XHS.Cookie = cookie
	}

	if err := GlobalConfig.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
}
