package domain

import "regexp"

var nonDigitRegex = regexp.MustCompile(`\D+`)

// NationalNumberLength is the digit count of a Mexican national number.
// A phone whose digit-only form has exactly this length is judged to lack
// the country prefix (lada 52); any other length is judged to carry one.
const NationalNumberLength = 10

// DigitsOnly removes every non-digit character from the phone value.
func DigitsOnly(phone string) string {
	return nonDigitRegex.ReplaceAllString(phone, "")
}

// LastDigits returns the trailing n characters of digits, or the whole
// string when it is shorter. Used as the registration join key.
func LastDigits(digits string, n int) string {
	if len(digits) <= n {
		return digits
	}
	return digits[len(digits)-n:]
}

// LacksPrefix reports whether the phone value classifies as missing the
// country prefix: its digit-only form is exactly ten digits long.
func LacksPrefix(phone string) bool {
	return len(DigitsOnly(phone)) == NationalNumberLength
}
