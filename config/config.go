package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Pauline-hiez/reservation-salle/app/booking"
)

type Config struct {
	Database struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		DBName   string `yaml:"dbname"`
		SSLMode  string `yaml:"sslmode"`
	} `yaml:"database"`
	JWT struct {
		Secret       string `yaml:"secret"`
		ExpiresHours int    `yaml:"expires_hours"`
	} `yaml:"jwt"`
	OAuth struct {
		GoogleClientID     string `yaml:"google_client_id"`
		GoogleClientSecret string `yaml:"google_client_secret"`
		RedirectURL        string `yaml:"redirect_url"`
	} `yaml:"oauth"`
	Server struct {
		Port    int    `yaml:"port"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"server"`
	Booking struct {
		MinDurationMinutes int    `yaml:"min_duration_minutes"`
		LatestEnd          string `yaml:"latest_end"`
		WeekdaysOnly       *bool  `yaml:"weekdays_only"`
		DefaultRoomID      int    `yaml:"default_room_id"`
	} `yaml:"booking"`
}

func LoadConfig(path string) (*Config, error) {
	config := &Config{}
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(file, config); err != nil {
		return nil, err
	}
	config.applyEnv()
	config.applyDefaults()
	return config, nil
}

// applyEnv lets deployment secrets override the file.
func (c *Config) applyEnv() {
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Database.Port = port
		}
	}
	if v := os.Getenv("DB_USER"); v != "" {
		c.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		c.Database.DBName = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.JWT.Secret = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_ID"); v != "" {
		c.OAuth.GoogleClientID = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_SECRET"); v != "" {
		c.OAuth.GoogleClientSecret = v
	}
}

func (c *Config) applyDefaults() {
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.JWT.ExpiresHours == 0 {
		c.JWT.ExpiresHours = 7 * 24
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Booking.MinDurationMinutes == 0 {
		c.Booking.MinDurationMinutes = 60
	}
	if c.Booking.LatestEnd == "" {
		c.Booking.LatestEnd = "19:00"
	}
	if c.Booking.DefaultRoomID == 0 {
		c.Booking.DefaultRoomID = 1
	}
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.ExpiresHours) * time.Hour
}

// Policy builds the booking rule set from configuration. latest_end
// "off" (or an unparseable value) disables the end-of-day rule.
func (c *Config) Policy() booking.Policy {
	policy := booking.Policy{
		MinDuration:  time.Duration(c.Booking.MinDurationMinutes) * time.Minute,
		WeekdaysOnly: true,
	}
	if c.Booking.WeekdaysOnly != nil {
		policy.WeekdaysOnly = *c.Booking.WeekdaysOnly
	}
	if t, err := time.Parse("15:04", c.Booking.LatestEnd); err == nil {
		policy.LatestEnd = t.Hour()*60 + t.Minute()
	}
	return policy
}

func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User, c.Database.Password,
		c.Database.DBName, c.Database.SSLMode)
}
