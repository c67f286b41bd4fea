package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequest_TokenRoundTrip(t *testing.T) {
	token := NextPageToken(0, 25, 60)
	assert.NotEmpty(t, token)
	assert.Equal(t, 25, PageRequest{PageToken: token}.Offset())

	assert.Empty(t, NextPageToken(50, 25, 60), "last page yields no token")
}

func TestPageRequest_GarbageTokenMeansFirstPage(t *testing.T) {
	assert.Equal(t, 0, PageRequest{PageToken: "!!not-base64!!"}.Offset())
	assert.Equal(t, 0, PageRequest{PageToken: "bm90LWEtbnVtYmVy"}.Offset())
}

func TestPageRequest_LimitClamping(t *testing.T) {
	assert.Equal(t, DefaultMaxResults, PageRequest{}.Limit())
	assert.Equal(t, MaxMaxResults, PageRequest{MaxResults: 5000}.Limit())
	assert.Equal(t, 25, PageRequest{MaxResults: 25}.Limit())
}
