package config

import (
	"lever/service/ledger"
	"lever/service/oracle"

	"github.com/fox-one/pkg/store/db"
)

// Config lever node config
type Config struct {
	App       App           `json:"app"`
	DB        db.Config     `json:"db"`
	Redis     Redis         `json:"redis"`
	PriceFeed oracle.Config `json:"price_feed"`
	RateFeed  RateFeed      `json:"rate_feed"`
	Ledger    ledger.Config `json:"ledger"`
	Admins    []string      `json:"admins"`
}

// App app config
type App struct {
	// Genesis is the unix time the ledger launched at
	Genesis  int64  `json:"genesis"`
	Location string `json:"location"`
	Port     int    `json:"port"`
}

// Redis redis config
type Redis struct {
	Addr string `json:"addr"`
	DB   int    `json:"db"`
}

// RateFeed reference rate feed config
type RateFeed struct {
	URL string `json:"url"`
}
