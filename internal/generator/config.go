package generator

// Config drives the synthetic dataset generator.
type Config struct {
	NumUsers                int
	MissingPhoneChance      float64
	NoPrefixChance          float64
	RegistrationMatchChance float64
	CustomAttributeChance   float64
	StartYear               int
	NumMonths               int
	Seed                    int64
}

// DefaultConfig returns baseline settings that produce a dataset exercising
// every pipeline branch: missing phones, both classifications, joined and
// unjoined registrations, and attribute-only registration dates.
func DefaultConfig() Config {
	return Config{
		NumUsers:                5000,
		MissingPhoneChance:      0.08,
		NoPrefixChance:          0.55,
		RegistrationMatchChance: 0.8,
		CustomAttributeChance:   0.9,
		StartYear:               2021,
		NumMonths:               48,
		Seed:                    42,
	}
}
