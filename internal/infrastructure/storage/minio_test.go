package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectURL(t *testing.T) {
	assert.Equal(t, "http://localhost:9000/recordings/meetings/a.webm",
		ObjectURL("http://localhost:9000/", "recordings", "/meetings/a.webm"))
}
