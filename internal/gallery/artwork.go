package gallery

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Artwork is a sellable record. The JSON shape is the persisted layout.
type Artwork struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Description string `json:"description"`
	Price       Price  `json:"price"`
	ImageURL    string `json:"imageUrl"`
}

// Price is kept as entered. Persisted data may hold it as a JSON string or number.
type Price string

func (p *Price) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Price(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("price: %w", err)
	}
	*p = Price(n.String())
	return nil
}

// Amount coerces the price to a non-negative integer the way a lenient
// integer parse would: leading digits only, anything else is zero.
func (p Price) Amount() int64 {
	s := strings.TrimSpace(string(p))
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 || neg {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Valid reports whether the price is a plain non-negative decimal ("5000",
// "12.50") whose whole part fits Amount. Signs, exponents, hex and Inf are rejected.
func (p Price) Valid() bool {
	whole, frac, hasFrac := strings.Cut(strings.TrimSpace(string(p)), ".")
	if !allDigits(whole) || (hasFrac && !allDigits(frac)) {
		return false
	}
	_, err := strconv.ParseInt(whole, 10, 64)
	return err == nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Display renders the price with a currency symbol and thousands separators.
func (p Price) Display(symbol string) string {
	return symbol + humanize.Comma(p.Amount())
}
