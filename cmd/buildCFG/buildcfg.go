package buildCFG

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/dbpg"
)

type ServerConfig struct {
	Port string
}

type RabbitConfig struct {
	Url      string
	Exchange string
	Queue    string
}

type AuthConfig struct {
	JWTSecret     string
	TokenTTLHours int
}

type SMTPConfig struct {
	Host     string
	Port     int
	From     string
	Password string
}

type UploadConfig struct {
	Dir          string
	MaxSizeBytes int64
}

func BuildServerConfig(cfg *config.Config, log *zerolog.Logger) *ServerConfig {
	port := cfg.GetString("server.port")
	if port == "" {
		port = "8080"
		log.Warn().Msg("server.port not set, falling back to 8080")
	}
	return &ServerConfig{Port: port}
}

func BuildDBConfig(cfg *config.Config, log *zerolog.Logger) (string, []string, *dbpg.Options, error) {
	masterDSN := cfg.GetString("db.master_dsn")
	if masterDSN == "" {
		return "", nil, nil, fmt.Errorf("db.master_dsn is required")
	}

	var slaveDSNs []string
	if raw := cfg.GetString("db.slave_dsns"); raw != "" {
		slaveDSNs = strings.Split(raw, ",")
	}

	opts := &dbpg.Options{
		MaxOpenConns: cfg.GetInt("db.max_open_conns"),
		MaxIdleConns: cfg.GetInt("db.max_idle_conns"),
	}
	log.Info().Int("slaves", len(slaveDSNs)).Msg("database configuration built")
	return masterDSN, slaveDSNs, opts, nil
}

func BuildRabbitConfig(cfg *config.Config, log *zerolog.Logger) (*RabbitConfig, error) {
	rc := &RabbitConfig{
		Url:      cfg.GetString("rabbit.url"),
		Exchange: cfg.GetString("rabbit.exchange"),
		Queue:    cfg.GetString("rabbit.queue"),
	}
	if rc.Url == "" || rc.Exchange == "" || rc.Queue == "" {
		return nil, fmt.Errorf("rabbit.url, rabbit.exchange and rabbit.queue are required")
	}
	log.Info().Str("exchange", rc.Exchange).Str("queue", rc.Queue).Msg("rabbit configuration built")
	return rc, nil
}

func BuildAuthConfig(cfg *config.Config, log *zerolog.Logger) (*AuthConfig, error) {
	ac := &AuthConfig{
		JWTSecret:     cfg.GetString("auth.jwt_secret"),
		TokenTTLHours: cfg.GetInt("auth.token_ttl_hours"),
	}
	if ac.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret is required")
	}
	if ac.TokenTTLHours <= 0 {
		ac.TokenTTLHours = 24
	}
	return ac, nil
}

func BuildSMTPConfig(cfg *config.Config, log *zerolog.Logger) *SMTPConfig {
	sc := &SMTPConfig{
		Host:     cfg.GetString("smtp.host"),
		Port:     cfg.GetInt("smtp.port"),
		From:     cfg.GetString("smtp.from"),
		Password: cfg.GetString("smtp.password"),
	}
	if sc.From == "" {
		log.Warn().Msg("smtp.from not set, registration e-mails will be skipped")
	}
	return sc
}

func BuildUploadConfig(cfg *config.Config, log *zerolog.Logger) *UploadConfig {
	uc := &UploadConfig{
		Dir:          cfg.GetString("upload.dir"),
		MaxSizeBytes: int64(cfg.GetInt("upload.max_size_bytes")),
	}
	if uc.Dir == "" {
		uc.Dir = "./uploads"
	}
	if uc.MaxSizeBytes <= 0 {
		uc.MaxSizeBytes = 5 << 20
	}
	return uc
}
