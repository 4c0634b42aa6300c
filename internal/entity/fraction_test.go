package entity_test

import (
	"math"
	"testing"

	"github.com/GateBay/nft-marketplace/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestNewFraction(t *testing.T) {
	f, err := entity.NewFraction(3, 100)
	assert.NoError(t, err)
	assert.Equal(t, uint(3), f.Num)
	assert.Equal(t, uint(100), f.Den)

	_, err = entity.NewFraction(1, 0)
	assert.Error(t, err)

	_, err = entity.NewFraction(101, 100)
	assert.Error(t, err)
}

func TestFraction_Valid(t *testing.T) {
	assert.True(t, entity.Fraction{Num: 0, Den: 1}.Valid())
	assert.True(t, entity.Fraction{Num: 1, Den: 1}.Valid())
	assert.False(t, entity.Fraction{Num: 1, Den: 0}.Valid())
	assert.False(t, entity.Fraction{Num: 2, Den: 1}.Valid())
}

func TestFraction_Mult(t *testing.T) {
	assert.Equal(t, uint64(15), entity.Fraction{Num: 3, Den: 100}.Mult(500))
	assert.Equal(t, uint64(150), entity.Fraction{Num: 3, Den: 10}.Mult(500))

	// Floors, never rounds
	assert.Equal(t, uint64(0), entity.Fraction{Num: 1, Den: 3}.Mult(2))
	assert.Equal(t, uint64(33), entity.Fraction{Num: 1, Den: 3}.Mult(100))
}

func TestFraction_MultDoesNotOverflow(t *testing.T) {
	f := entity.Fraction{Num: 3, Den: 10}

	assert.Equal(t, uint64(math.MaxUint64/10*3), f.Mult(math.MaxUint64/10*10))
}

func TestFraction_String(t *testing.T) {
	assert.Equal(t, "3/100", entity.Fraction{Num: 3, Den: 100}.String())
}
