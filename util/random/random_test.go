package random

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeq(t *testing.T) {
	s := Seq(40)
	assert.Len(t, s, 40)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-zA-Z]+$`), s)
	assert.NotEqual(t, s, Seq(40))
}

func TestSecret(t *testing.T) {
	s := Secret(32)
	assert.Len(t, s, 43)
	assert.NotContains(t, s, "=")
}
