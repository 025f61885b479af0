package ptr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToCopies(t *testing.T) {
	v := 3
	p := To(v)
	v = 4
	assert.Equal(t, 3, *p)
}

func TestDeref(t *testing.T) {
	assert.Equal(t, 7, Deref(To(7), 0))
	assert.Equal(t, 5, Deref[int](nil, 5))
	assert.Equal(t, "", Deref[string](nil, ""))
}
