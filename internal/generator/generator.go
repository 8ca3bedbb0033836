package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// CustomAttributes mirrors the export's nested profile sub-object.
type CustomAttributes struct {
	Name          string `json:"name,omitempty"`
	Paternal      string `json:"paternal,omitempty"`
	Maternal      string `json:"maternal,omitempty"`
	Entity        string `json:"entity,omitempty"`
	FechaRegistro string `json:"fechaRegistro,omitempty"`
}

// UserRecord is one synthetic export record.
type UserRecord struct {
	Phone            string            `json:"phone,omitempty"`
	Email            string            `json:"email,omitempty"`
	ExternalID       string            `json:"external_id,omitempty"`
	Country          string            `json:"country,omitempty"`
	CustomAttributes *CustomAttributes `json:"custom_attributes,omitempty"`
}

// RegistrationRow is one row of the companion registration CSV.
type RegistrationRow struct {
	ID           string
	RegisteredAt string
	Name         string
	Phone        string
}

// Dataset contains the generated export and registration rows.
type Dataset struct {
	Users         []UserRecord
	Registrations []RegistrationRow
}

// Generator produces synthetic data shaped like the production export.
type Generator struct {
	cfg           Config
	rand          *rand.Rand
	nameFragments nameFragments
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	if cfg.NumUsers <= 0 {
		cfg.NumUsers = DefaultConfig().NumUsers
	}
	if cfg.StartYear <= 0 {
		cfg.StartYear = DefaultConfig().StartYear
	}
	if cfg.NumMonths <= 0 {
		cfg.NumMonths = DefaultConfig().NumMonths
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:           cfg,
		rand:          rand.New(rand.NewSource(cfg.Seed)),
		nameFragments: defaultNameFragments(),
	}
}

// Generate synthesises users and registration rows. It respects context
// cancellation.
func (g *Generator) Generate(ctx context.Context) (Dataset, error) {
	users := make([]UserRecord, 0, g.cfg.NumUsers)
	registrations := make([]RegistrationRow, 0, g.cfg.NumUsers)

	for i := 0; i < g.cfg.NumUsers; i++ {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}

		externalID := fmt.Sprintf("EXT-%06d", i+1)
		user := UserRecord{
			Email:      fmt.Sprintf("usuario%05d@example.mx", i+1),
			ExternalID: externalID,
			Country:    "MX",
		}

		national := g.randomNationalNumber()
		hasPhone := g.rand.Float64() >= g.cfg.MissingPhoneChance
		if hasPhone {
			if g.rand.Float64() < g.cfg.NoPrefixChance {
				user.Phone = g.formatNational(national)
			} else {
				user.Phone = g.formatWithPrefix(national)
			}
		}

		registeredAt := g.randomRegistrationDate()
		if g.rand.Float64() < g.cfg.CustomAttributeChance {
			user.CustomAttributes = g.randomAttributes(registeredAt)
		}

		if hasPhone && g.rand.Float64() < g.cfg.RegistrationMatchChance {
			name := ""
			if user.CustomAttributes != nil {
				name = user.CustomAttributes.Name
			}
			registrations = append(registrations, RegistrationRow{
				ID:           externalID,
				RegisteredAt: registeredAt,
				Name:         name,
				// CSV rows carry the mobile dialing form; only the trailing
				// ten digits matter for the join.
				Phone: "521" + national,
			})
		}

		users = append(users, user)
	}

	return Dataset{Users: users, Registrations: registrations}, nil
}

// randomNationalNumber returns a ten-digit national number with a plausible
// area code.
func (g *Generator) randomNationalNumber() string {
	area := g.nameFragments.areaCodes[g.rand.Intn(len(g.nameFragments.areaCodes))]
	subscriber := ""
	for len(area)+len(subscriber) < 10 {
		subscriber += fmt.Sprintf("%d", g.rand.Intn(10))
	}
	return area + subscriber
}

func (g *Generator) formatNational(national string) string {
	switch g.rand.Intn(3) {
	case 0:
		return national
	case 1:
		return fmt.Sprintf("%s %s %s", national[:2], national[2:6], national[6:])
	default:
		return fmt.Sprintf("(%s) %s-%s", national[:2], national[2:6], national[6:])
	}
}

func (g *Generator) formatWithPrefix(national string) string {
	switch g.rand.Intn(3) {
	case 0:
		return "52" + national
	case 1:
		return "+52" + national
	default:
		return fmt.Sprintf("+52 %s %s %s", national[:2], national[2:6], national[6:])
	}
}

func (g *Generator) randomRegistrationDate() string {
	offset := g.rand.Intn(g.cfg.NumMonths)
	year := g.cfg.StartYear + offset/12
	month := offset%12 + 1
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d",
		year, month, 1+g.rand.Intn(28), g.rand.Intn(24), g.rand.Intn(60), g.rand.Intn(60))
}

func (g *Generator) randomAttributes(registeredAt string) *CustomAttributes {
	attrs := &CustomAttributes{
		Name:     g.pick(g.nameFragments.firstNames),
		Paternal: g.pick(g.nameFragments.surnames),
		Maternal: g.pick(g.nameFragments.surnames),
		Entity:   g.pick(g.nameFragments.entities),
	}
	// A minority of profiles carry their own registration date, which the
	// classifier uses only when the CSV join misses.
	if g.rand.Float64() < 0.2 {
		attrs.FechaRegistro = registeredAt
	}
	return attrs
}

func (g *Generator) pick(values []string) string {
	return values[g.rand.Intn(len(values))]
}

type nameFragments struct {
	firstNames []string
	surnames   []string
	entities   []string
	areaCodes  []string
}

func defaultNameFragments() nameFragments {
	return nameFragments{
		firstNames: []string{
			"María", "José", "Guadalupe", "Juan", "Fernanda", "Luis",
			"Sofía", "Carlos", "Valentina", "Miguel", "Ximena", "Diego",
		},
		surnames: []string{
			"Hernández", "García", "Martínez", "López", "González",
			"Pérez", "Rodríguez", "Sánchez", "Ramírez", "Flores",
		},
		entities: []string{
			"Ciudad de México", "Jalisco", "Nuevo León", "Puebla",
			"Guanajuato", "Veracruz", "Yucatán", "Chihuahua",
		},
		areaCodes: []string{"55", "33", "81", "222", "442", "998", "664", "618"},
	}
}
