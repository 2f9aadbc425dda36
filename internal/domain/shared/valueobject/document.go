package valueobject

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
)

// Document validation errors
var (
	ErrInvalidCPFLength   = errors.New("CPF must have exactly 11 digits")
	ErrInvalidCNPJLength  = errors.New("CNPJ must have exactly 14 digits")
	ErrRepeatedDigits     = errors.New("document with all repeated digits is invalid")
	ErrInvalidCheckDigits = errors.New("document check digits do not match")
)

// CPF is a value object for the Brazilian individual taxpayer registry number.
// The zero value represents "no document informed", which is not an error.
type CPF struct {
	digits string
}

// CNPJ is a value object for the Brazilian company taxpayer registry number.
// The zero value represents "no document informed", which is not an error.
type CNPJ struct {
	digits string
}

// stripDocument removes the usual formatting characters (dots, dashes, slashes)
func stripDocument(value string) string {
	replacer := strings.NewReplacer(".", "", "-", "", "/", "", " ", "")
	return replacer.Replace(value)
}

// allDigits reports whether the string contains only ASCII digits
func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// allSameDigit reports whether every character in s equals the first one.
// Sequences like "11111111111" satisfy the modulo-11 checksum but are
// known invalid registry numbers, so they must be rejected up front.
func allSameDigit(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// cpfCheckDigit computes one CPF check digit over the given digits,
// starting with the given weight and decreasing by one per position.
func cpfCheckDigit(digits string, startWeight int) int {
	sum := 0
	for i, r := range digits {
		sum += int(r-'0') * (startWeight - i)
	}
	remainder := (sum * 10) % 11
	if remainder == 10 {
		return 0
	}
	return remainder
}

// cnpjCheckDigit computes one CNPJ check digit using the given weight table
func cnpjCheckDigit(digits string, weights []int) int {
	sum := 0
	for i, r := range digits {
		sum += int(r-'0') * weights[i]
	}
	remainder := sum % 11
	if remainder < 2 {
		return 0
	}
	return 11 - remainder
}

// NewCPF creates a CPF from a raw string, accepting formatted input
// ("123.456.789-09") or bare digits. An empty string yields the zero
// CPF without error.
func NewCPF(value string) (CPF, error) {
	digits := stripDocument(value)
	if digits == "" {
		return CPF{}, nil
	}
	if err := validateCPFDigits(digits); err != nil {
		return CPF{}, err
	}
	return CPF{digits: digits}, nil
}

// validateCPFDigits runs the modulo-11 checksum over a bare digit string
func validateCPFDigits(digits string) error {
	if len(digits) != 11 || !allDigits(digits) {
		return ErrInvalidCPFLength
	}
	if allSameDigit(digits) {
		return ErrRepeatedDigits
	}
	if cpfCheckDigit(digits[:9], 10) != int(digits[9]-'0') {
		return ErrInvalidCheckDigits
	}
	if cpfCheckDigit(digits[:10], 11) != int(digits[10]-'0') {
		return ErrInvalidCheckDigits
	}
	return nil
}

// IsValidCPF reports whether the given string is a well-formed CPF.
// Empty strings are not valid (there is simply no document to judge).
func IsValidCPF(value string) bool {
	digits := stripDocument(value)
	if digits == "" {
		return false
	}
	return validateCPFDigits(digits) == nil
}

// IsZero returns true when no document was informed
func (c CPF) IsZero() bool {
	return c.digits == ""
}

// Digits returns the bare 11-digit string
func (c CPF) Digits() string {
	return c.digits
}

// String returns the CPF formatted as 000.000.000-00
func (c CPF) String() string {
	if c.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s.%s.%s-%s", c.digits[:3], c.digits[3:6], c.digits[6:9], c.digits[9:])
}

// Value implements driver.Valuer for database storage
func (c CPF) Value() (driver.Value, error) {
	if c.IsZero() {
		return nil, nil
	}
	return c.digits, nil
}

// Scan implements sql.Scanner for database retrieval
func (c *CPF) Scan(value any) error {
	if value == nil {
		c.digits = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		c.digits = stripDocument(v)
	case []byte:
		c.digits = stripDocument(string(v))
	default:
		return fmt.Errorf("cannot scan %T into CPF", value)
	}
	return nil
}

// NewCNPJ creates a CNPJ from a raw string, accepting formatted input
// ("12.345.678/0001-95") or bare digits. An empty string yields the zero
// CNPJ without error.
func NewCNPJ(value string) (CNPJ, error) {
	digits := stripDocument(value)
	if digits == "" {
		return CNPJ{}, nil
	}
	if err := validateCNPJDigits(digits); err != nil {
		return CNPJ{}, err
	}
	return CNPJ{digits: digits}, nil
}

var (
	cnpjFirstWeights  = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjSecondWeights = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// validateCNPJDigits runs the modulo-11 checksum over a bare digit string
func validateCNPJDigits(digits string) error {
	if len(digits) != 14 || !allDigits(digits) {
		return ErrInvalidCNPJLength
	}
	if allSameDigit(digits) {
		return ErrRepeatedDigits
	}
	if cnpjCheckDigit(digits[:12], cnpjFirstWeights) != int(digits[12]-'0') {
		return ErrInvalidCheckDigits
	}
	if cnpjCheckDigit(digits[:13], cnpjSecondWeights) != int(digits[13]-'0') {
		return ErrInvalidCheckDigits
	}
	return nil
}

// IsValidCNPJ reports whether the given string is a well-formed CNPJ.
// Empty strings are not valid (there is simply no document to judge).
func IsValidCNPJ(value string) bool {
	digits := stripDocument(value)
	if digits == "" {
		return false
	}
	return validateCNPJDigits(digits) == nil
}

// IsZero returns true when no document was informed
func (c CNPJ) IsZero() bool {
	return c.digits == ""
}

// Digits returns the bare 14-digit string
func (c CNPJ) Digits() string {
	return c.digits
}

// String returns the CNPJ formatted as 00.000.000/0000-00
func (c CNPJ) String() string {
	if c.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s.%s.%s/%s-%s", c.digits[:2], c.digits[2:5], c.digits[5:8], c.digits[8:12], c.digits[12:])
}

// Value implements driver.Valuer for database storage
func (c CNPJ) Value() (driver.Value, error) {
	if c.IsZero() {
		return nil, nil
	}
	return c.digits, nil
}

// Scan implements sql.Scanner for database retrieval
func (c *CNPJ) Scan(value any) error {
	if value == nil {
		c.digits = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		c.digits = stripDocument(v)
	case []byte:
		c.digits = stripDocument(string(v))
	default:
		return fmt.Errorf("cannot scan %T into CNPJ", value)
	}
	return nil
}
