// Package config turns the command line and the libpq environment into
// connection settings and opens the store's database.
package config

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Usage is printed when the positional arguments are wrong.
const Usage = "Usage: pizzastore <dbname> <port> <user>"

const pingTimeout = 10 * time.Second

type Config struct {
	DBName   string `mapstructure:"dbname"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Host     string `mapstructure:"host"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// FromArgs reads <dbname> <port> <user> and fills the rest from PGHOST,
// PGPASSWORD and PGSSLMODE.
func FromArgs(args []string) (Config, error) {
	if len(args) != 3 {
		return Config{}, fmt.Errorf("expected 3 arguments, got %d\n%s", len(args), Usage)
	}

	v := viper.New()
	v.SetDefault("host", "localhost")
	v.SetDefault("password", "")
	v.SetDefault("sslmode", "disable")
	for key, env := range map[string]string{
		"host":     "PGHOST",
		"password": "PGPASSWORD",
		"sslmode":  "PGSSLMODE",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}
	v.Set("dbname", args[0])
	v.Set("port", args[1])
	v.Set("user", args[2])

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return cfg, nil
}

// DSN is the postgres:// URL for cfg.
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	} else {
		u.User = url.User(c.User)
	}
	return u.String()
}

// OpenDB connects to Postgres with a single pooled connection and checks it
// answers.
func OpenDB(ctx context.Context, cfg Config, l *log.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.New(l, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	l.Println("✅ Database connected")
	return db, nil
}
