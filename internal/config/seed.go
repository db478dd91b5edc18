package config

type Seed struct {
	// RunMigrations applies pending schema migrations before seeding.
	RunMigrations bool `env:"SEED_RUN_MIGRATIONS" envDefault:"false"`
}
