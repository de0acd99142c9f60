package config

type Bootstrap struct {
	// SeedDemoData writes the demonstration catalog into an empty store.
	SeedDemoData bool `env:"SEED_DEMO_DATA" envDefault:"true"`
}
