package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeFilterValue(t *testing.T) {
	assert.Equal(t, `Math`, escapeFilterValue(`Math`))
	assert.Equal(t, `Intro \"Basics\"`, escapeFilterValue(`Intro "Basics"`))
	assert.Equal(t, `C:\\notes`, escapeFilterValue(`C:\notes`))
}
