package config

type Event struct {
	// LowStockThreshold is the stock level at or below which product events are logged as warnings.
	LowStockThreshold int `env:"EVENT_LOW_STOCK_THRESHOLD" envDefault:"5"`
}
