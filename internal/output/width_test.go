package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Ocean Sunset", Truncate("Ocean Sunset", 20))
	assert.Equal(t, "Ocean S…", Truncate("Ocean Sunset", 8))
	assert.Equal(t, "", Truncate("Ocean", 0))
	assert.Equal(t, "山山…", Truncate("山山山山", 5))
}

func TestTitleWidthUsesColumns(t *testing.T) {
	t.Setenv("COLUMNS", "80")
	assert.Equal(t, 50, titleWidth(30))

	t.Setenv("COLUMNS", "30")
	assert.Equal(t, 20, titleWidth(25))
}
