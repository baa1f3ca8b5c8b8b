package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hand-Woven Basket", "hand-woven-basket"},
		{"Chitenge  Tote!!", "chitenge-tote"},
		{"  leading & trailing  ", "leading-trailing"},
		{"UPPER case 42", "upper-case-42"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), tt.in)
	}
}
