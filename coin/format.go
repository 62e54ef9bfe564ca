package coin

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/iov-one/lockchain/errors"
)

var humanCoinFormatRx = regexp.MustCompile(`^(\-?)\s*(\d+)(\.\d+)?\s*([A-Z]{3,4})$`)

// ParseHumanFormat parse a human readable coin representation. Accepted format
// is a string:
//
//	"<whole>[.<fractional>] <ticker>"
func ParseHumanFormat(h string) (Coin, error) {
	results := humanCoinFormatRx.FindStringSubmatch(strings.TrimSpace(h))
	if results == nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid coin format %q", h)
	}
	sign, wholeStr, fracStr, ticker := results[1], results[2], results[3], results[4]

	whole, err := strconv.ParseInt(wholeStr, 10, 64)
	if err != nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid whole value: %s", err)
	}

	var fract int64
	if fracStr != "" {
		// Strip the dot and pad to nine digits, so that no floating
		// point conversion is needed.
		digits := fracStr[1:]
		if len(digits) > 9 {
			return Coin{}, errors.Wrap(errors.ErrInput, "fractional value too precise")
		}
		digits += strings.Repeat("0", 9-len(digits))
		fract, err = strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return Coin{}, errors.Wrapf(errors.ErrInput, "invalid fractional value: %s", err)
		}
	}

	if sign == "-" {
		whole = -whole
		fract = -fract
	}
	return Coin{Ticker: ticker, Whole: whole, Fractional: fract}, nil
}

// String provides a human readable representation of the coin. For a valid
// coin the result is a valid human readable format that can be parsed back.
func (c Coin) String() string {
	if n, err := c.normalize(); err == nil {
		c = n
	}

	var b strings.Builder
	if c.Whole == 0 && c.Fractional < 0 {
		b.WriteString("-")
	}
	b.WriteString(strconv.FormatInt(c.Whole, 10))

	if f := c.Fractional; f != 0 {
		if f < 0 {
			f = -f
		}
		s := strconv.FormatInt(f, 10)
		// Add leading zeros to convert it to a floating point number.
		s = "." + strings.Repeat("0", 9-len(s)) + s
		// Remove trailing zeros as they provide no information.
		b.WriteString(strings.TrimRight(s, "0"))
	}

	if c.Ticker != "" {
		b.WriteString(" " + c.Ticker)
	}
	return b.String()
}

// UnmarshalJSON accepts both the human readable string format and the
// structure representation.
func (c *Coin) UnmarshalJSON(raw []byte) error {
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		parsed, err := ParseHumanFormat(human)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	// Because UnmarshalJSON method is provided, Coin type can no longer be
	// used directly.
	var coin struct {
		Whole      int64
		Fractional int64
		Ticker     string
	}
	if err := json.Unmarshal(raw, &coin); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot decode coin: %s", err)
	}
	*c = NewCoin(coin.Whole, coin.Fractional, coin.Ticker)
	return nil
}

// Set updates this coin value to what is provided. This method implements
// flag.Value interface.
func (c *Coin) Set(raw string) error {
	val, err := ParseHumanFormat(raw)
	if err != nil {
		return err
	}
	*c = val
	return nil
}
