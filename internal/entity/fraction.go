package entity

import (
	"fmt"
	"math/big"
)

// Fraction represents a number between 0 and 1.
// It is used as a percentage to calculate both fees and royalties.
type Fraction struct {
	Num uint `json:"num"`
	Den uint `json:"den"`
}

func NewFraction(num, den uint) (Fraction, error) {
	f := Fraction{Num: num, Den: den}
	if !f.Valid() {
		return Fraction{}, fmt.Errorf("invalid fraction %s", f)
	}

	return f, nil
}

func (f Fraction) Valid() bool {
	return f.Den > 0 && f.Num <= f.Den
}

// Mult multiplies this Fraction by the given value, flooring the result.
// The intermediate product is widened so value*num cannot overflow.
func (f Fraction) Mult(value uint64) uint64 {
	result := new(big.Int).Mul(new(big.Int).SetUint64(value), new(big.Int).SetUint64(uint64(f.Num)))
	result.Quo(result, new(big.Int).SetUint64(uint64(f.Den)))

	return result.Uint64()
}

func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Num, f.Den)
}
