package chart

import "sync"

// Category10 is the ten-colour categorical palette used for city lines.
var Category10 = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// OrdinalScale assigns palette colours to keys in the order the keys are first seen.
// Once assigned, a key keeps its colour; keys beyond the palette size wrap around.
type OrdinalScale struct {
	mu      sync.Mutex
	palette []string
	index   map[string]int
	keys    []string
}

// NewOrdinalScale creates a scale with the given domain pre-assigned in order.
func NewOrdinalScale(palette []string, domain []string) *OrdinalScale {
	s := &OrdinalScale{
		palette: palette,
		index:   make(map[string]int, len(domain)),
	}
	for _, k := range domain {
		s.assign(k)
	}
	return s
}

// Color returns the colour for key, assigning the next palette entry to unseen keys.
func (s *OrdinalScale) Color(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.palette) == 0 {
		return "currentColor"
	}
	i, ok := s.index[key]
	if !ok {
		i = s.assign(key)
	}
	return s.palette[i%len(s.palette)]
}

// Domain returns the keys in assignment order.
func (s *OrdinalScale) Domain() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

func (s *OrdinalScale) assign(key string) int {
	if i, ok := s.index[key]; ok {
		return i
	}
	i := len(s.keys)
	s.index[key] = i
	s.keys = append(s.keys, key)
	return i
}
