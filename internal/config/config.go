package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Config 保存进程级配置（仅使用配置文件或内置默认值）。
// 字段提供开发友好的默认值；生产环境请在 config.yaml 中覆盖。
type Config struct {
	Env        string
	HTTPAddr   string
	MySQL      MySQLConfig
	Redis      RedisConfig
	Pagination PaginationConfig
	Cache      CacheConfig
	Limits     LimitConfig
	Security   SecurityConfig
	Docs       DocsConfig
}

type MySQLConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	Params   string
}

func (m MySQLConfig) DSN() string {
	port := m.Port
	if port == 0 {
		port = 3306
	}
	host := m.Host
	if host == "" {
		host = "127.0.0.1"
	}
	db := m.DBName
	if db == "" {
		db = "skilldex"
	}
	params := m.Params
	if params == "" {
		params = "parseTime=true&loc=Local&charset=utf8mb4,utf8"
	}
	// 注意：Password 可能为空（本地无密码开发），生产强烈建议设置强密码
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s", m.User, m.Password, host, port, db, params)
}

func (m MySQLConfig) DSNMasked() string {
	masked := m
	if masked.Password != "" {
		masked.Password = "******"
	}
	return masked.DSN()
}

type RedisConfig struct {
	Addr     string
	DB       int
	Password string
}

// PaginationConfig 定义列表接口的分页默认值与上限。
type PaginationConfig struct {
	// 未携带 limit 参数时的默认每页条数
	DefaultLimit int
	// limit 参数允许的最大值，超出时截断到该值
	MaxLimit int
}

// CacheConfig 控制按 ID 读取实体的 Redis 读穿缓存。
type CacheConfig struct {
	Enable bool
	TTL    time.Duration
}

// LimitConfig 控制写操作（POST/PUT/DELETE）的限流。
type LimitConfig struct {
	WritePerMinute int
	// 时间窗口（默认 1m）
	Window time.Duration
}

type SecurityConfig struct {
	HSTS struct {
		Enabled           bool
		MaxAgeSeconds     int
		IncludeSubdomains bool
	}
}

type DocsConfig struct {
	// 是否启用内置的 OpenAPI 规范下载端点
	Enable bool
	// OpenAPI 规范文件路径（相对进程工作目录）
	SpecPath string
}

// Load 生成配置：先使用内置默认值，再用同目录的配置文件（config.yaml/yml/json）覆盖。
// 默认：MySQL 127.0.0.1:3306 用户 root/123456；Redis 127.0.0.1:6379 无密码。
func Load() Config {
	// 仅使用配置文件；代码内提供开发友好的默认值作为兜底。
	// 1) 默认值（本地开发可直接运行）
	cfg := Config{
		Env:        "dev",
		HTTPAddr:   ":8080",
		MySQL:      MySQLConfig{Host: "127.0.0.1", Port: 3306, User: "root", Password: "123456", DBName: "skilldex", Params: "parseTime=true&loc=Local&charset=utf8mb4,utf8"},
		Redis:      RedisConfig{Addr: "127.0.0.1:6379", DB: 0, Password: ""},
		Pagination: PaginationConfig{DefaultLimit: 50, MaxLimit: 200},
		Cache:      CacheConfig{Enable: true, TTL: 5 * time.Minute},
		Limits:     LimitConfig{WritePerMinute: 120, Window: time.Minute},
		Security: func() SecurityConfig {
			var s SecurityConfig
			s.HSTS.Enabled = true
			s.HSTS.MaxAgeSeconds = 31536000
			s.HSTS.IncludeSubdomains = true
			return s
		}(),
		Docs: DocsConfig{Enable: true, SpecPath: "docs/openapi.json"},
	}

	// 2) 配置文件覆盖（若存在）
	if path := FirstExisting("config.yaml", "config.yml", "config.json"); path != "" {
		_ = loadFromFile(path, &cfg)
	}
	return cfg
}

// 配置文件格式：YAML 或 JSON。仅非零值会覆盖现有字段。
func loadFromFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	ext := strings.ToLower(filepath.Ext(path))
	var fm fileModel
	if ext == ".yaml" || ext == ".yml" {
		if err := yaml.Unmarshal(b, &fm); err != nil {
			return err
		}
	} else if ext == ".json" || ext == "" {
		if err := json.Unmarshal(b, &fm); err != nil {
			return err
		}
	} else {
		return errors.New("unsupported config file format")
	}
	fm.apply(cfg)
	return nil
}

// --- 配置文件模型与合并逻辑 ---

type fileModel struct {
	Env        string          `yaml:"env" json:"env"`
	HTTPAddr   string          `yaml:"http_addr" json:"http_addr"`
	MySQL      *fileMySQL      `yaml:"mysql" json:"mysql"`
	Redis      *fileRedis      `yaml:"redis" json:"redis"`
	Pagination *filePagination `yaml:"pagination" json:"pagination"`
	Cache      *fileCache      `yaml:"cache" json:"cache"`
	Limits     *fileLimits     `yaml:"limits" json:"limits"`
	Security   *fileSecurity   `yaml:"security" json:"security"`
	Docs       *fileDocs       `yaml:"docs" json:"docs"`
}

type fileMySQL struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	User     string `yaml:"user" json:"user"`
	Password string `yaml:"password" json:"password"`
	DBName   string `yaml:"db" json:"db"`
	Params   string `yaml:"params" json:"params"`
}
type fileRedis struct {
	Addr     string `yaml:"addr" json:"addr"`
	DB       int    `yaml:"db" json:"db"`
	Password string `yaml:"password" json:"password"`
}
type filePagination struct {
	DefaultLimit int `yaml:"default_limit" json:"default_limit"`
	MaxLimit     int `yaml:"max_limit" json:"max_limit"`
}
type fileCache struct {
	Enable *bool  `yaml:"enable" json:"enable"`
	TTL    string `yaml:"ttl" json:"ttl"`
}
type fileLimits struct {
	WritePerMinute int    `yaml:"write_per_minute" json:"write_per_minute"`
	Window         string `yaml:"window" json:"window"`
}
type fileSecurity struct {
	HSTS struct {
		Enabled           *bool `yaml:"enabled" json:"enabled"`
		MaxAge            int   `yaml:"max_age" json:"max_age"`
		IncludeSubdomains *bool `yaml:"include_subdomains" json:"include_subdomains"`
	} `yaml:"hsts" json:"hsts"`
}
type fileDocs struct {
	Enable   *bool  `yaml:"enable" json:"enable"`
	SpecPath string `yaml:"spec_path" json:"spec_path"`
}

func (fm *fileModel) apply(cfg *Config) {
	if fm.Env != "" {
		cfg.Env = fm.Env
	}
	if fm.HTTPAddr != "" {
		cfg.HTTPAddr = fm.HTTPAddr
	}
	if fm.MySQL != nil {
		if fm.MySQL.Host != "" {
			cfg.MySQL.Host = fm.MySQL.Host
		}
		if fm.MySQL.Port != 0 {
			cfg.MySQL.Port = fm.MySQL.Port
		}
		if fm.MySQL.User != "" {
			cfg.MySQL.User = fm.MySQL.User
		}
		if fm.MySQL.Password != "" {
			cfg.MySQL.Password = fm.MySQL.Password
		}
		if fm.MySQL.DBName != "" {
			cfg.MySQL.DBName = fm.MySQL.DBName
		}
		if fm.MySQL.Params != "" {
			cfg.MySQL.Params = fm.MySQL.Params
		}
	}
	if fm.Redis != nil {
		if fm.Redis.Addr != "" {
			cfg.Redis.Addr = fm.Redis.Addr
		}
		if fm.Redis.DB != 0 {
			cfg.Redis.DB = fm.Redis.DB
		}
		if fm.Redis.Password != "" {
			cfg.Redis.Password = fm.Redis.Password
		}
	}
	if fm.Pagination != nil {
		if fm.Pagination.DefaultLimit != 0 {
			cfg.Pagination.DefaultLimit = fm.Pagination.DefaultLimit
		}
		if fm.Pagination.MaxLimit != 0 {
			cfg.Pagination.MaxLimit = fm.Pagination.MaxLimit
		}
	}
	if fm.Cache != nil {
		if fm.Cache.Enable != nil {
			cfg.Cache.Enable = *fm.Cache.Enable
		}
		if fm.Cache.TTL != "" {
			if d, err := time.ParseDuration(fm.Cache.TTL); err == nil {
				cfg.Cache.TTL = d
			}
		}
	}
	if fm.Limits != nil {
		if fm.Limits.WritePerMinute != 0 {
			cfg.Limits.WritePerMinute = fm.Limits.WritePerMinute
		}
		if fm.Limits.Window != "" {
			if d, err := time.ParseDuration(fm.Limits.Window); err == nil {
				cfg.Limits.Window = d
			}
		}
	}
	if fm.Security != nil {
		if fm.Security.HSTS.Enabled != nil {
			cfg.Security.HSTS.Enabled = *fm.Security.HSTS.Enabled
		}
		if fm.Security.HSTS.MaxAge != 0 {
			cfg.Security.HSTS.MaxAgeSeconds = fm.Security.HSTS.MaxAge
		}
		if fm.Security.HSTS.IncludeSubdomains != nil {
			cfg.Security.HSTS.IncludeSubdomains = *fm.Security.HSTS.IncludeSubdomains
		}
	}
	if fm.Docs != nil {
		if fm.Docs.Enable != nil {
			cfg.Docs.Enable = *fm.Docs.Enable
		}
		if fm.Docs.SpecPath != "" {
			cfg.Docs.SpecPath = fm.Docs.SpecPath
		}
	}
}

// FirstExisting 按顺序返回第一个存在的文件路径；若都不存在则返回空字符串。
// 注意：该函数用于在多路径间进行容错查找，如配置文件或静态资源位置。
func FirstExisting(paths ...string) string {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
