package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0, 0))
	assert.Equal(t, 10, NormalizeLimit(0, 10))
	assert.Equal(t, 40, NormalizeLimit(40, 10))
	assert.Equal(t, MaxLimit, NormalizeLimit(5000, 10))
	assert.Equal(t, DefaultLimit, NormalizeLimit(-1, 0))
}

func TestNormalizePage(t *testing.T) {
	assert.Equal(t, 1, NormalizePage(0))
	assert.Equal(t, 1, NormalizePage(-3))
	assert.Equal(t, 7, NormalizePage(7))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 25}.Offset(0))
	assert.Equal(t, 50, Params{Page: 3, Limit: 25}.Offset(0))
	assert.Equal(t, 0, Params{}.Offset(0))
	assert.Equal(t, 10, Params{Page: 2}.Offset(10))
}

func TestNormalized(t *testing.T) {
	got := Params{Page: -1, Limit: 0}.Normalized(30)
	assert.Equal(t, Params{Page: 1, Limit: 30}, got)
}
