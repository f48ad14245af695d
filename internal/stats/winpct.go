package stats

import (
	"bytes"
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// WinPct is a win percentage rounded to two decimals, or Undefined when no
// games were played. The zero value is Undefined.
type WinPct struct {
	hundredths int64
	defined    bool
}

// Defined returns a percentage expressed in hundredths of a percent, so
// Defined(5676) is 56.76%.
func Defined(hundredths int64) WinPct {
	return WinPct{hundredths: hundredths, defined: true}
}

// Undefined returns the sentinel used when a window holds no games.
func Undefined() WinPct {
	return WinPct{}
}

// percentOf rounds wins/games*100 half-up to two decimals. games must be > 0.
// Tallies too large for the int64 fast path are divided with math/big.
func percentOf(wins, games int) WinPct {
	w, g := int64(wins), int64(games)
	if w >= 0 && w <= maxFastWins && g <= maxFastGames {
		return Defined((w*20000 + g) / (2 * g))
	}
	num := new(big.Int).Mul(big.NewInt(w), big.NewInt(20000))
	num.Add(num, big.NewInt(g))
	num.Quo(num, new(big.Int).Mul(big.NewInt(g), big.NewInt(2)))
	return Defined(num.Int64())
}

const (
	maxFastWins  = (math.MaxInt64 - math.MaxInt32) / 20000
	maxFastGames = math.MaxInt32
)

func (p WinPct) IsDefined() bool {
	return p.defined
}

func (p WinPct) Hundredths() int64 {
	return p.hundredths
}

// Value returns the percentage as a float. It is 0 for Undefined; check
// IsDefined before trusting it.
func (p WinPct) Value() float64 {
	return float64(p.hundredths) / 100
}

func (p WinPct) String() string {
	if !p.defined {
		return "N/A"
	}
	return p.decimal() + "%"
}

func (p WinPct) decimal() string {
	return fmt.Sprintf("%d.%02d", p.hundredths/100, p.hundredths%100)
}

// Compare orders percentages from worst to best: Undefined sorts below every
// defined value, including 0%. Two Undefined values are equal.
func (p WinPct) Compare(q WinPct) int {
	switch {
	case !p.defined && !q.defined:
		return 0
	case !p.defined:
		return -1
	case !q.defined:
		return 1
	case p.hundredths < q.hundredths:
		return -1
	case p.hundredths > q.hundredths:
		return 1
	default:
		return 0
	}
}

func (p WinPct) MarshalJSON() ([]byte, error) {
	if !p.defined {
		return []byte("null"), nil
	}
	return []byte(p.decimal()), nil
}

func (p *WinPct) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = Undefined()
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid win percentage %s: %w", data, err)
	}
	*p = Defined(int64(math.Round(v * 100)))
	return nil
}
