package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loaderWith(env ...string) *EnvLoader {
	l := NewEnvLoader(EnvPrefix)
	l.environ = func() []string { return env }
	return l
}

func defaultsMap(t *testing.T) map[string]any {
	t.Helper()
	m, err := toMap(Default())
	require.NoError(t, err)
	return m
}

func TestEnvLoader_EnvToPath(t *testing.T) {
	l := NewEnvLoader(EnvPrefix)
	tests := []struct {
		env  string
		want string
	}{
		{"WHEELNORM_WHEEL_END_DELAY", "wheel.endDelay"},
		{"WHEELNORM_WHEEL_MAX_NON_INERTIAL_DELTA_FACTOR", "wheel.maxNonInertialDeltaFactor"},
		{"WHEELNORM_PLATFORM_USER_AGENT", "platform.userAgent"},
		{"WHEELNORM_OUTPUT_FORMAT", "output.format"},
		{"WHEELNORM_OUTPUT", "output"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, l.envToPath(tt.env), tt.env)
	}
}

func TestEnvLoader_Load(t *testing.T) {
	l := loaderWith(
		"WHEELNORM_WHEEL_HISTORY_SIZE=12",
		"WHEELNORM_WHEEL_SPIKE_GAP=2.5",
		"WHEELNORM_OUTPUT_SYNTHETIC=no",
		"WHEELNORM_BROWSER=firefox",
		"WHEELNORM_PLATFORM_USER_AGENT=",
		"WHEELNORM_WHEEL=flat",
		"OTHER_VAR=1",
		"malformed",
	)

	got, err := l.Load(defaultsMap(t))
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"wheel":    map[string]any{"historySize": int64(12), "spikeGap": 2.5},
		"output":   map[string]any{"synthetic": false},
		"platform": map[string]any{"browser": "firefox", "userAgent": ""},
	}, got)
}

func TestEnvLoader_CustomMapping(t *testing.T) {
	l := loaderWith("WHEELNORM_DELAY=75ms")
	l.AddMapping("WHEELNORM_DELAY", "wheel.endDelay")

	got, err := l.Load(defaultsMap(t))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"wheel": map[string]any{"endDelay": "75ms"}}, got)
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		current any
		want    any
		wantErr bool
	}{
		{"bool yes", "yes", true, true, false},
		{"bool zero", "0", true, false, false},
		{"bool invalid", "maybe", true, nil, true},
		{"int", "42", int64(1), int64(42), false},
		{"int invalid", "4.2", int64(1), nil, true},
		{"float from int text", "7", 1.0, 7.0, false},
		{"float invalid", "x", 1.0, nil, true},
		{"string", "100ms", "50ms", "100ms", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseValue(tt.input, tt.current)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
