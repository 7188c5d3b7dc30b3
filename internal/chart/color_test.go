package chart

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrdinalScaleAssignsInDomainOrder(t *testing.T) {
	s := NewOrdinalScale(Category10, []string{"Phoenix", "Chicago", "Charlotte"})

	assert.Equal(t, Category10[0], s.Color("Phoenix"))
	assert.Equal(t, Category10[1], s.Color("Chicago"))
	assert.Equal(t, Category10[2], s.Color("Charlotte"))

	// Asking again, in another order, changes nothing.
	assert.Equal(t, Category10[2], s.Color("Charlotte"))
	assert.Equal(t, Category10[0], s.Color("Phoenix"))
}

func TestOrdinalScaleDistinctUpToPaletteSize(t *testing.T) {
	var domain []string
	for i := 0; i < len(Category10)+2; i++ {
		domain = append(domain, fmt.Sprintf("city-%d", i))
	}
	s := NewOrdinalScale(Category10, domain)

	seen := map[string]bool{}
	for _, c := range domain[:len(Category10)] {
		color := s.Color(c)
		assert.False(t, seen[color], "colour %s reused", color)
		seen[color] = true
	}

	// Past the palette the scale wraps around.
	assert.Equal(t, Category10[0], s.Color(domain[len(Category10)]))
	assert.Equal(t, Category10[1], s.Color(domain[len(Category10)+1]))
}

func TestOrdinalScaleUnknownKeyAppends(t *testing.T) {
	s := NewOrdinalScale(Category10, []string{"A"})
	assert.Equal(t, Category10[1], s.Color("B"))
	assert.Equal(t, []string{"A", "B"}, s.Domain())
}

func TestOrdinalScaleEmptyPalette(t *testing.T) {
	s := NewOrdinalScale(nil, []string{"A"})
	assert.Equal(t, "currentColor", s.Color("A"))
}
