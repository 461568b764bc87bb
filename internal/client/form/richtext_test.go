package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEffectivelyEmpty(t *testing.T) {
	cases := []struct {
		name string
		html string
		want bool
	}{
		{"blank", "", true},
		{"markup only", "<p></p>", true},
		{"nested markup", "<p><strong></strong></p>", true},
		{"self closing", "<p><br/></p>", true},
		{"whitespace only", "<p>   \n\t</p>", true},
		{"nbsp entity only", "<p>&nbsp;&nbsp;</p>", true},
		{"visible text", "<p>Leg day</p>", false},
		{"text outside tags", "just text", false},
		{"entity text", "<p>Fish &amp; chips</p>", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, IsEffectivelyEmpty(c.html))
		})
	}
}
