package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	Use()
	assert.Equal("line 7 halted", From("line %d %v", 7, "halted"))

	Use("en-GB", "fr-FR")
	assert.Equal("no arguments", From("no arguments"))
}
