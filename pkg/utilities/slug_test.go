package utilities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Getting Started MERN Stack", "getting-started-mern-stack"},
		{"Hello, World!", "hello-world"},
		{"  spaced   out  ", "spaced-out"},
		{"Café au Lait", "cafe-au-lait"},
		{"Already-a-slug", "already-a-slug"},
		{"UPPER case -- dashes", "upper-case-dashes"},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Slugify(c.in), "Slugify(%q)", c.in)
	}
}

func TestNewKSUID(t *testing.T) {
	a := NewKSUID()
	b := NewKSUID()
	assert.Len(t, a, 27)
	assert.NotEqual(t, a, b)
}

func TestNewSnowflakeID(t *testing.T) {
	a := NewSnowflakeID()
	b := NewSnowflakeID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
