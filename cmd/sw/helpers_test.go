package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveIndexed(t *testing.T) {
	list := []string{"/a.png", "/b.png", "/c.png"}

	cases := []struct {
		name    string
		arg     string
		want    string
		wantErr bool
	}{
		{name: "plain path passes through", arg: "/x.png", want: "/x.png"},
		{name: "first entry", arg: "@0", want: "/a.png"},
		{name: "last entry", arg: "@2", want: "/c.png"},
		{name: "out of range", arg: "@3", wantErr: true},
		{name: "negative", arg: "@-1", wantErr: true},
		{name: "not a number", arg: "@abc", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := resolveIndexed(tc.arg, list)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPrettifyPath(t *testing.T) {
	assert.Equal(t, "misty forest", prettifyPath("/walls/misty_forest.png"))
	assert.Equal(t, "city night", prettifyPath("city-night.jpg"))
	assert.Equal(t, "plain", prettifyPath("plain"))
}

func TestPrettifyTime(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "just now", prettifyTime(now.Add(-30*time.Second)))
	assert.Equal(t, "5m ago", prettifyTime(now.Add(-5*time.Minute)))
	assert.Equal(t, "3h ago", prettifyTime(now.Add(-3*time.Hour)))
	old := now.Add(-48 * time.Hour)
	assert.Equal(t, old.Format("2006-01-02 15:04"), prettifyTime(old))
}

func TestPrettifyDuration(t *testing.T) {
	assert.Equal(t, "45s", prettifyDuration(45*time.Second))
	assert.Equal(t, "12m", prettifyDuration(12*time.Minute))
	assert.Equal(t, "2h5m", prettifyDuration(2*time.Hour+5*time.Minute))
}
