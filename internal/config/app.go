package config

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type AppConfig struct {
	CurrencyCode  string `yaml:"currency"`
	MonthlyLimit  int64  `yaml:"monthly-budget"`
	WeekStartName string `yaml:"week-start-day"`
	TimezoneName  string `yaml:"timezone"`
}

func (c *AppConfig) Currency() string {
	return c.CurrencyCode
}

func (c *AppConfig) MonthlyBudget() decimal.Decimal {
	return decimal.NewFromInt(c.MonthlyLimit)
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func (c *AppConfig) WeekStartDay() time.Weekday {
	if day, ok := weekdays[strings.ToLower(c.WeekStartName)]; ok {
		return day
	}
	return time.Monday
}

func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimezoneName)
	if err != nil {
		return time.UTC
	}
	return loc
}
