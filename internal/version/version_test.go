package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	assert.Equal(t, "dev (unknown) built unknown", String())
}

func TestUserAgent(t *testing.T) {
	assert.Equal(t, "spacexy-tracker/dev", UserAgent())
}
