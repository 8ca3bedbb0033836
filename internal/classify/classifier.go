package classify

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hvaldez/ladacheck/internal/domain"
	"github.com/hvaldez/ladacheck/internal/regindex"
)

// registrationLayout is the exact timestamp format carried by the
// registration CSV. Dates in any other shape are kept verbatim but never
// contribute a period.
const registrationLayout = "2006-01-02 15:04:05"

// Result tags a populated user with its prefix classification.
type Result struct {
	LacksPrefix bool
	User        domain.ClassifiedUser
}

// Record parses one object's text and classifies its phone number.
// ok is false when the object carries no usable phone value; such records
// are excluded from every count. A non-nil error means the text was not
// valid JSON; the caller logs it and moves on.
func Record(objectText string, index regindex.Index) (Result, bool, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(objectText), &obj); err != nil {
		return Result{}, false, fmt.Errorf("decode record: %w", err)
	}

	phone, _ := obj["phone"].(string)
	if phone == "" {
		return Result{}, false, nil
	}

	digits := domain.DigitsOnly(phone)
	last10 := domain.LastDigits(digits, domain.NationalNumberLength)

	user := domain.ClassifiedUser{
		Phone:        phone,
		PhoneDigits:  digits,
		Last10Digits: last10,
		PhoneLength:  len(digits),
		Email:        stringField(obj, "email"),
		ExternalID:   stringField(obj, "external_id"),
		Country:      stringField(obj, "country"),
		RegisteredAt: domain.Unavailable,
	}

	if date, found := index[last10]; found {
		user.RegisteredAt = date
		if ts, err := time.Parse(registrationLayout, date); err == nil {
			year, month := ts.Year(), int(ts.Month())
			user.Year = &year
			user.Month = &month
			user.Period = fmt.Sprintf("%04d-%02d", year, month)
		}
		// A date that fails to parse keeps the raw string but yields no
		// period, excluding the record from temporal aggregation only.
	}

	if attrs, found := obj["custom_attributes"].(map[string]any); found {
		applyCustomAttributes(&user, attrs)
	}

	return Result{
		LacksPrefix: domain.LacksPrefix(phone),
		User:        user,
	}, true, nil
}

func applyCustomAttributes(user *domain.ClassifiedUser, attrs map[string]any) {
	if v, ok := attrs["name"].(string); ok {
		user.Name = v
	}
	if v, ok := attrs["paternal"].(string); ok {
		user.PaternalName = v
	}
	if v, ok := attrs["maternal"].(string); ok {
		user.MaternalName = v
	}
	if v, ok := attrs["entity"].(string); ok {
		user.Entity = v
	}
	// The attribute-level date is a fallback only; it is never parsed into
	// year/month/period, so these records stay out of the temporal table.
	if v, ok := attrs["fechaRegistro"].(string); ok && user.RegisteredAt == domain.Unavailable {
		user.RegisteredAt = v
	}
}

func stringField(obj map[string]any, key string) string {
	if v, ok := obj[key].(string); ok {
		return v
	}
	return domain.Unavailable
}

// Preview truncates object text for diagnostics on parse failures.
func Preview(objectText string) string {
	const max = 100
	if len(objectText) <= max {
		return objectText
	}
	return objectText[:max] + "..."
}
