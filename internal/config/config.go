package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/types"
)

// Переменные окружения, переопределяющие файл конфигурации
const (
	EnvLifecycleAPIURL   = "LIFECYCLE_API_URL"
	EnvLifecycleAPIToken = "LIFECYCLE_API_TOKEN"
	EnvSimulatedMode     = "SIMULATED_MODE"
	EnvLogLevel          = "LOG_LEVEL"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация приложения
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	LifecycleAPI LifecycleAPIConfig `toml:"lifecycle_api"`
	Store        StoreConfig        `toml:"store"`
	Simulated    SimulatedConfig    `toml:"simulated"`
	Scheduling   SchedulingConfig   `toml:"scheduling"`
}

// ServerConfig параметры HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig параметры метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// LifecycleAPIConfig параметры удаленного сервиса бронирований
type LifecycleAPIConfig struct {
	URL string `toml:"url"`
	// Token используется для фонового прогрева, запросы пользователей идут с их токеном
	Token     string  `toml:"token"`
	Timeout   int     `toml:"timeout"`
	RateLimit float64 `toml:"rate_limit"`
	RateBurst int     `toml:"rate_burst"`
}

// StoreConfig параметры кэша бронирований
type StoreConfig struct {
	PageSize int  `toml:"page_size"`
	WarmUp   bool `toml:"warm_up"`
	// WarmUpUserID пользователь, для которого кэш заполняется при старте
	WarmUpUserID string `toml:"warm_up_user_id"`
}

// SimulatedConfig параметры демо-режима
type SimulatedConfig struct {
	Enabled            bool   `toml:"enabled"`
	Seed               uint64 `toml:"seed"`
	Stylists           int    `toml:"stylists"`
	ServicesPerStylist int    `toml:"services_per_stylist"`
	BookingsPerActor   int    `toml:"bookings_per_actor"`
	LatencyMs          int    `toml:"latency_ms"`
}

// SchedulingConfig рабочие часы и шаг сетки слотов
type SchedulingConfig struct {
	Open        string `toml:"open"`
	Close       string `toml:"close"`
	StepMinutes int    `toml:"step_minutes"`
	Timezone    string `toml:"timezone"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "booking_lifecycle",
		},
		LifecycleAPI: LifecycleAPIConfig{
			Timeout:   10,
			RateLimit: 10,
			RateBurst: 5,
		},
		Store: StoreConfig{
			PageSize: domain.DefaultPageSize,
		},
		Simulated: SimulatedConfig{
			Stylists:           8,
			ServicesPerStylist: 3,
			BookingsPerActor:   12,
		},
		Scheduling: SchedulingConfig{
			Open:        string(domain.DefaultOpenTime),
			Close:       string(domain.DefaultCloseTime),
			StepMinutes: domain.DefaultSlotStepMinutes,
			Timezone:    "UTC",
		},
	}
}

// Load читает конфигурацию из TOML файла, затем применяет .env и переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	// .env не обязателен, уже заданные переменные окружения не перезаписываются
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvLifecycleAPIURL); ok {
		c.LifecycleAPI.URL = v
	}
	if v, ok := os.LookupEnv(EnvLifecycleAPIToken); ok {
		c.LifecycleAPI.Token = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.Logs.Level = v
	}
	if v, ok := os.LookupEnv(EnvSimulatedMode); ok {
		simulated, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidConfig, EnvSimulatedMode, v)
		}
		c.Simulated.Enabled = simulated
	}
	return nil
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Store.PageSize <= 0 || c.Store.PageSize > domain.MaxPageSize {
		return fmt.Errorf("%w: store.page_size must be in 1..%d", ErrInvalidConfig, domain.MaxPageSize)
	}
	if c.Store.WarmUp && c.Store.WarmUpUserID == "" {
		return fmt.Errorf("%w: store.warm_up_user_id is required when warm_up is enabled", ErrInvalidConfig)
	}
	if !c.Simulated.Enabled && c.LifecycleAPI.URL == "" {
		return fmt.Errorf("%w: lifecycle_api.url is required unless simulated mode is enabled", ErrInvalidConfig)
	}
	if c.LifecycleAPI.Timeout <= 0 {
		return fmt.Errorf("%w: lifecycle_api.timeout must be positive", ErrInvalidConfig)
	}
	if c.Simulated.Stylists <= 0 || c.Simulated.ServicesPerStylist <= 0 || c.Simulated.BookingsPerActor < 0 {
		return fmt.Errorf("%w: simulated fixture sizes must be positive", ErrInvalidConfig)
	}
	if _, err := c.Scheduling.SlotConfig(); err != nil {
		return fmt.Errorf("%w: scheduling: %v", ErrInvalidConfig, err)
	}
	if _, err := c.Scheduling.Location(); err != nil {
		return fmt.Errorf("%w: scheduling.timezone: %v", ErrInvalidConfig, err)
	}
	return nil
}

// SlotConfig собирает параметры генерации слотов
func (s SchedulingConfig) SlotConfig() (domain.SlotConfig, error) {
	open, err := types.NewTimeStringFromString(s.Open)
	if err != nil {
		return domain.SlotConfig{}, err
	}
	closing, err := types.NewTimeStringFromString(s.Close)
	if err != nil {
		return domain.SlotConfig{}, err
	}
	if s.StepMinutes <= 0 {
		return domain.SlotConfig{}, fmt.Errorf("step_minutes must be positive, got %d", s.StepMinutes)
	}

	cfg := domain.SlotConfig{
		Window:      domain.OperatingWindow{Open: open, Close: closing},
		StepMinutes: s.StepMinutes,
	}
	if err := cfg.Window.Validate(); err != nil {
		return domain.SlotConfig{}, err
	}
	return cfg, nil
}

// Location возвращает часовой пояс расписания
func (s SchedulingConfig) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(s.Timezone)
}

// Latency возвращает искусственную задержку демо-режима
func (s SimulatedConfig) Latency() time.Duration {
	return time.Duration(s.LatencyMs) * time.Millisecond
}

// Mode флаг демо-режима, который можно переключать во время работы
type Mode struct {
	simulated atomic.Bool
}

// NewMode создает флаг с начальным значением
func NewMode(simulated bool) *Mode {
	m := &Mode{}
	m.simulated.Store(simulated)
	return m
}

// Simulated возвращает true, если включен демо-режим
func (m *Mode) Simulated() bool {
	return m.simulated.Load()
}

// SetSimulated переключает демо-режим
func (m *Mode) SetSimulated(simulated bool) {
	m.simulated.Store(simulated)
}
