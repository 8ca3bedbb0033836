package domain

// Unavailable is the sentinel stored in place of fields missing from the
// source export or the registration index.
const Unavailable = "No disponible"

// ClassifiedUser is one export record after phone normalization, prefix
// classification and the registration-date join. JSON names follow the
// artifact schema consumed by downstream reporting.
type ClassifiedUser struct {
	Phone        string `json:"phone"`
	PhoneDigits  string `json:"phone_limpio"`
	Last10Digits string `json:"ultimos_10_digitos"`
	PhoneLength  int    `json:"phone_length"`
	Email        string `json:"email"`
	ExternalID   string `json:"external_id"`
	Country      string `json:"country"`
	RegisteredAt string `json:"fecha_registro"`

	// Present only when the joined registration date parsed.
	Year   *int   `json:"anio_registro,omitempty"`
	Month  *int   `json:"mes_registro,omitempty"`
	Period string `json:"periodo,omitempty"`

	// Copied from custom_attributes when present.
	Name         string `json:"nombre,omitempty"`
	PaternalName string `json:"apellido_paterno,omitempty"`
	MaternalName string `json:"apellido_materno,omitempty"`
	Entity       string `json:"entidad,omitempty"`
}
