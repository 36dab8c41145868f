package server

import (
	"context"
	"testing"

	"github.com/dekarrin/pushdown/server/serr"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestServer(t *testing.T) PushdownServer {
	t.Helper()

	ps, err := New(Config{RecordTraces: true})
	if err != nil {
		t.Fatalf("could not create server: %v", err)
	}
	return ps
}

func Test_PushdownServer_CheckWord(t *testing.T) {
	testCases := []struct {
		name         string
		word         string
		expectAccept bool
		expectErrIs  error
	}{
		{
			name:         "accepted word",
			word:         "aabbcc",
			expectAccept: true,
		},
		{
			name:         "rejected word",
			word:         "abcc",
			expectAccept: false,
		},
		{
			name:         "empty word is rejected not an error",
			word:         "",
			expectAccept: false,
		},
		{
			name:        "uppercase char is a bad argument",
			word:        "aBc",
			expectErrIs: serr.ErrBadArgument,
		},
		{
			name:        "non-letter char is a bad argument",
			word:        "ab!",
			expectErrIs: serr.ErrBadArgument,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			ps := newTestServer(t)
			check, err := ps.CheckWord(context.Background(), tc.word)

			if tc.expectErrIs != nil {
				assert.ErrorIs(err, tc.expectErrIs)
				return
			}
			if !assert.NoError(err) {
				return
			}

			assert.Equal(tc.word, check.Word)
			assert.Equal(tc.expectAccept, check.Accepted)
			assert.NotEqual(uuid.Nil, check.ID)
			assert.NotEmpty(check.Trace)
		})
	}
}

func Test_PushdownServer_GetCheck(t *testing.T) {
	assert := assert.New(t)

	ps := newTestServer(t)
	ctx := context.Background()

	created, err := ps.CheckWord(ctx, "abc")
	if !assert.NoError(err) {
		return
	}

	got, err := ps.GetCheck(ctx, created.ID)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(created, got)

	_, err = ps.GetCheck(ctx, uuid.New())
	assert.ErrorIs(err, serr.ErrNotFound)
}

func Test_PushdownServer_GetAllChecks(t *testing.T) {
	assert := assert.New(t)

	ps := newTestServer(t)
	ctx := context.Background()

	words := []string{"abc", "ab", "aabbcc"}
	for _, w := range words {
		_, err := ps.CheckWord(ctx, w)
		if !assert.NoError(err) {
			return
		}
	}

	checks, err := ps.GetAllChecks(ctx)
	if !assert.NoError(err) {
		return
	}
	assert.Len(checks, 3)
}

func Test_PushdownServer_DeleteCheck(t *testing.T) {
	assert := assert.New(t)

	ps := newTestServer(t)
	ctx := context.Background()

	created, err := ps.CheckWord(ctx, "abc")
	if !assert.NoError(err) {
		return
	}

	deleted, err := ps.DeleteCheck(ctx, created.ID)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(created, deleted)

	_, err = ps.GetCheck(ctx, created.ID)
	assert.ErrorIs(err, serr.ErrNotFound)

	_, err = ps.DeleteCheck(ctx, created.ID)
	assert.ErrorIs(err, serr.ErrNotFound)
}
