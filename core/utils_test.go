package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Commerce", CleanString("  Commerce "))
	assert.Equal(t, "jo@test.cd", CleanString(" Jo@Test.CD ", true))
	assert.Equal(t, "", CleanString("   "))
}

func TestCleanStrings(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, CleanStrings([]string{" a ", "b "}))
	assert.Nil(t, CleanStrings(nil))
}
