package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hvaldez/ladacheck/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		users        = flag.Int("users", cfg.NumUsers, "number of users to generate")
		missingPhone = flag.Float64("missing-phone-chance", cfg.MissingPhoneChance, "probability a user has no phone")
		noPrefix     = flag.Float64("no-prefix-chance", cfg.NoPrefixChance, "probability a phone lacks the country prefix")
		regMatch     = flag.Float64("registration-match-chance", cfg.RegistrationMatchChance, "probability a user has a matching registration row")
		customAttrs  = flag.Float64("custom-attr-chance", cfg.CustomAttributeChance, "probability a user carries custom attributes")
		startYear    = flag.Int("start-year", cfg.StartYear, "first registration year")
		months       = flag.Int("months", cfg.NumMonths, "registration window length in months")
		seed         = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir    = flag.String("output-dir", "exports", "directory to write allUsers.json and userData.csv")
	)
	flag.Parse()

	genCfg := generator.Config{
		NumUsers:                *users,
		MissingPhoneChance:      clampProbability(*missingPhone),
		NoPrefixChance:          clampProbability(*noPrefix),
		RegistrationMatchChance: clampProbability(*regMatch),
		CustomAttributeChance:   clampProbability(*customAttrs),
		StartYear:               *startYear,
		NumMonths:               *months,
		Seed:                    *seed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gen := generator.New(genCfg)
	dataset, err := gen.Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if err := generator.WriteDataset(dataset, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d users and %d registration rows into %s\n",
		len(dataset.Users), len(dataset.Registrations), *outputDir)
}

func clampProbability(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
