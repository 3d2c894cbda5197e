package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	assert.NotEqual(t, ErrMissingTaskService.Error(), ErrInvalidPorts.Error())
	assert.Contains(t, ErrMissingTaskService.Error(), "task service")
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}
