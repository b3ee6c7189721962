package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	digitsOnly       = regexp.MustCompile(`^\d+$`)
	expirationFormat = regexp.MustCompile(`^(\d{1,2})/(\d{4})$`)
)

// Card is a validated card value object. It is immutable once constructed
// and never serializes its sensitive fields.
type Card struct {
	number         string
	holderName     string
	cvv            string
	expirationDate string
}

func NewCard(number, holderName, cvv, expirationDate string) (*Card, error) {
	c := &Card{}
	if err := c.setNumber(number); err != nil {
		return nil, err
	}
	if err := c.setHolderName(holderName); err != nil {
		return nil, err
	}
	if err := c.setCVV(cvv); err != nil {
		return nil, err
	}
	if err := c.setExpirationDate(expirationDate); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Card) Number() string         { return c.number }
func (c *Card) HolderName() string     { return c.holderName }
func (c *Card) CVV() string            { return c.cvv }
func (c *Card) ExpirationDate() string { return c.expirationDate }

func (c *Card) setNumber(value string) error {
	if value == "" {
		return &DomainError{Code: ErrCodeInvalidCard, Message: "invalid card number, must not be empty"}
	}
	sanitized := strings.ReplaceAll(value, " ", "")
	if !digitsOnly.MatchString(sanitized) {
		return &DomainError{Code: ErrCodeInvalidCard, Message: "invalid card number, must contain only digits"}
	}
	if len(sanitized) != 16 {
		return &DomainError{Code: ErrCodeInvalidCard, Message: "invalid card number length, must be 16 digits"}
	}
	if !luhnCheck(sanitized) {
		return &DomainError{Code: ErrCodeInvalidCard, Message: "invalid card number, failed Luhn check"}
	}
	c.number = sanitized
	return nil
}

func (c *Card) setHolderName(value string) error {
	if value == "" {
		return &DomainError{Code: ErrCodeInvalidHolderName, Message: "invalid holder name, must not be empty"}
	}
	if len(value) < 3 {
		return &DomainError{Code: ErrCodeInvalidHolderName, Message: "invalid holder name, must contain at least 3 characters"}
	}
	c.holderName = value
	return nil
}

func (c *Card) setCVV(value string) error {
	sanitized := strings.ReplaceAll(value, " ", "")
	if !digitsOnly.MatchString(sanitized) {
		return &DomainError{Code: ErrCodeInvalidCVV, Message: "invalid cvv, must contain only digits"}
	}
	if len(sanitized) != 3 {
		return &DomainError{Code: ErrCodeInvalidCVV, Message: "invalid cvv length, must be 3 digits"}
	}
	c.cvv = sanitized
	return nil
}

func (c *Card) setExpirationDate(value string) error {
	sanitized := strings.ReplaceAll(value, " ", "")
	matches := expirationFormat.FindStringSubmatch(sanitized)
	if matches == nil {
		return &DomainError{
			Code:    ErrCodeInvalidExpiration,
			Message: fmt.Sprintf("invalid expiration date format, must be MM/YYYY, received %s", sanitized),
		}
	}

	month, _ := strconv.Atoi(matches[1])
	year, _ := strconv.Atoi(matches[2])

	if month < 1 || month > 12 {
		return &DomainError{Code: ErrCodeInvalidExpiration, Message: "invalid expiration month, must be between 1 and 12"}
	}

	// Cards expire at the end of the stated month.
	endOfMonth := time.Date(year, time.Month(month)+1, 0, 23, 59, 59, 0, time.Local)
	if endOfMonth.Before(time.Now()) {
		return &DomainError{Code: ErrCodeCardExpired, Message: "card is expired"}
	}

	c.expirationDate = fmt.Sprintf("%02d/%04d", month, year)
	return nil
}

// luhnCheck validates a digit string against the Luhn checksum.
func luhnCheck(value string) bool {
	parity := len(value) % 2
	sum := 0
	for i, r := range value {
		digit := int(r - '0')
		if i%2 == parity {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
	}
	return sum%10 == 0
}

// MarshalJSON hides the card entirely from any external representation.
func (c *Card) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}
