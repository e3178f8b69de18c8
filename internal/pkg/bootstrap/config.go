package bootstrap

import (
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config 是三个进程共用的配置。先读可选的 YAML 文件，再用环境变量覆盖。
type Config struct {
	App   AppConfig   `yaml:"app"`
	Store StoreConfig `yaml:"store"`
	Infra InfraConfig `yaml:"infra"`
	GenAI GenAIConfig `yaml:"genai"`
}

type AppConfig struct {
	Port          int    `yaml:"port"`          // 为 0 时使用各服务的默认端口
	PublicBaseURL string `yaml:"publicBaseUrl"` // 生成链接与二维码使用的外部地址
	StoreBaseURL  string `yaml:"storeBaseUrl"`  // order-store 服务地址
	LogLevel      string `yaml:"logLevel"`
}

type StoreConfig struct {
	Binding         string        `yaml:"binding"`
	FallbackBinding string        `yaml:"fallbackBinding"`
	TTL             time.Duration `yaml:"ttl"`
	// Backend 可选 redis、memory、none；为空时有 Redis 地址就用 redis，否则用 memory
	Backend string `yaml:"backend"`
	// BoundAs 是后端实际绑定的名字，默认与 Binding 相同
	BoundAs string `yaml:"boundAs"`
}

// ResolvedBackend 返回实际使用的存储后端
func (c *Config) ResolvedBackend() string {
	if c.Store.Backend != "" {
		return c.Store.Backend
	}
	if len(c.Infra.Redis.Addrs) > 0 {
		return "redis"
	}
	return "memory"
}

// BoundName 返回后端绑定的名字
func (c *Config) BoundName() string {
	if c.Store.BoundAs != "" {
		return c.Store.BoundAs
	}
	return c.Store.Binding
}

type InfraConfig struct {
	Redis struct {
		Addrs    []string `yaml:"addrs"`
		Password string   `yaml:"password"`
		DB       int      `yaml:"db"`
	} `yaml:"redis"`
	Kafka struct {
		Brokers    []string `yaml:"brokers"`
		OrderTopic string   `yaml:"orderTopic"`
	} `yaml:"kafka"`
	Jaeger struct {
		Endpoint string `yaml:"endpoint"`
	} `yaml:"jaeger"`
}

type GenAIConfig struct {
	APIKey string `yaml:"apiKey"`
	Model  string `yaml:"model"`
}

// DefaultConfig 返回未配置任何外部依赖时的默认值
func DefaultConfig() *Config {
	cfg := &Config{
		App: AppConfig{
			PublicBaseURL: "http://localhost:8081",
			StoreBaseURL:  "http://localhost:8080",
			LogLevel:      "info",
		},
		Store: StoreConfig{
			Binding: "JHPCIC_STORE",
			TTL:     30 * 24 * time.Hour,
		},
		GenAI: GenAIConfig{Model: "gemini-3-flash-preview"},
	}
	cfg.Infra.Kafka.OrderTopic = "order-link-issued"
	return cfg
}

// LoadConfig 读取 CONFIG_FILE 指向的文件（可选）并应用环境变量
func LoadConfig() (*Config, error) {
	return LoadConfigFile(getEnv("CONFIG_FILE", ""))
}

// LoadConfigFile 读取指定文件，path 为空时只使用默认值与环境变量
func LoadConfigFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var err error
	if c.App.Port, err = envInt("PORT", c.App.Port); err != nil {
		return err
	}
	c.App.PublicBaseURL = getEnv("PUBLIC_BASE_URL", c.App.PublicBaseURL)
	c.App.StoreBaseURL = getEnv("STORE_BASE_URL", c.App.StoreBaseURL)
	c.App.LogLevel = getEnv("LOG_LEVEL", c.App.LogLevel)

	c.Store.Binding = getEnv("STORE_BINDING", c.Store.Binding)
	c.Store.FallbackBinding = getEnv("STORE_FALLBACK_BINDING", c.Store.FallbackBinding)
	c.Store.Backend = getEnv("STORE_BACKEND", c.Store.Backend)
	c.Store.BoundAs = getEnv("STORE_BOUND_AS", c.Store.BoundAs)
	if v := getEnv("STORE_TTL", ""); v != "" {
		if c.Store.TTL, err = time.ParseDuration(v); err != nil {
			return errors.Wrapf(err, "invalid STORE_TTL %q", v)
		}
	}

	c.Infra.Redis.Addrs = envList("REDIS_ADDRS", c.Infra.Redis.Addrs)
	c.Infra.Redis.Password = getEnv("REDIS_PASSWORD", c.Infra.Redis.Password)
	if c.Infra.Redis.DB, err = envInt("REDIS_DB", c.Infra.Redis.DB); err != nil {
		return err
	}
	c.Infra.Kafka.Brokers = envList("KAFKA_BROKERS", c.Infra.Kafka.Brokers)
	c.Infra.Kafka.OrderTopic = getEnv("KAFKA_ORDER_TOPIC", c.Infra.Kafka.OrderTopic)
	c.Infra.Jaeger.Endpoint = getEnv("JAEGER_ENDPOINT", c.Infra.Jaeger.Endpoint)

	c.GenAI.APIKey = getEnv("GEMINI_API_KEY", c.GenAI.APIKey)
	c.GenAI.Model = getEnv("GEMINI_MODEL", c.GenAI.Model)
	return nil
}

// getEnv 是一个内部辅助函数，从环境变量中读取配置。
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s %q", key, v)
	}
	return n, nil
}

// envList 解析逗号分隔的地址列表
func envList(key string, fallback []string) []string {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var current atomic.Pointer[Config]

// GetCurrentConfig 返回 Init 加载的配置，未初始化时返回默认值
func GetCurrentConfig() *Config {
	if cfg := current.Load(); cfg != nil {
		return cfg
	}
	return DefaultConfig()
}
