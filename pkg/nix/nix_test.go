package nix

import (
	"errors"
	"testing"

	"github.com/effect-native/libsqlite/pkg/core"
	"github.com/effect-native/libsqlite/pkg/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemsMatchTargets(t *testing.T) {
	require.Len(t, AllSystems, len(platform.Targets))
	for _, target := range platform.Targets {
		s := System(target.System)
		assert.True(t, s.IsValid(), target.System)
		assert.Equal(t, s, SystemFor(target.Platform))

		p, err := s.Platform()
		require.NoError(t, err)
		assert.Equal(t, target.Platform, p)
	}
}

func TestSystemPlatform_Unsupported(t *testing.T) {
	_, err := System("i686-linux").Platform()
	assert.True(t, errors.Is(err, core.ErrUnsupportedSystem))
	assert.False(t, System("i686-linux").IsValid())
}

func TestParseOutputPath(t *testing.T) {
	const out = "/nix/store/s66mzxpvicwk07gjbjfw9izjfa797vsw-sqlite-3.50.1"

	got, err := ParseOutputPath(out + "\n")
	require.NoError(t, err)
	assert.Equal(t, out, got)
	assert.Equal(t, out+"/lib", LibDir(got))
}

func TestParseOutputPath_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: "  \n"},
		{name: "relative", raw: "result/lib"},
		{name: "not a store child", raw: "/usr/lib"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOutputPath(tt.raw)
			assert.Error(t, err)
		})
	}
}
