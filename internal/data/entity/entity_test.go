package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovieStatusValid(t *testing.T) {
	assert.True(t, MovieStatusComingSoon.Valid())
	assert.True(t, MovieStatusNowShowing.Valid())
	assert.True(t, MovieStatusExpired.Valid())
	assert.False(t, MovieStatus("now_showing").Valid())
	assert.False(t, MovieStatus("").Valid())
}
