package script

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/wheelnorm/internal/input/wheel"
	"github.com/dshills/wheelnorm/internal/logging"
	"github.com/dshills/wheelnorm/internal/trace"
)

func mustLoad(t *testing.T, code string, opts ...Option) *Hook {
	t.Helper()
	h, err := LoadString("test.lua", code, opts...)
	require.NoError(t, err)
	t.Cleanup(h.Close)
	return h
}

func TestHook_Annotate(t *testing.T) {
	h := mustLoad(t, `
function on_wheel(e)
	return string.format("%s %.0f,%.0f @%.1f", e.kind, e.x, e.y, e.t)
end

function on_wheel_end(e)
	if e.synthetic then
		return "restart"
	end
end
`)

	note, err := h.Annotate(trace.Emission{
		Offset:   12500 * time.Microsecond,
		Kind:     trace.KindWheel,
		Distance: wheel.Distance{X: -50, Y: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, "wheel -50,10 @12.5", note)

	note, err = h.Annotate(trace.Emission{Kind: trace.KindEnd, Synthetic: true})
	require.NoError(t, err)
	assert.Equal(t, "restart", note)

	note, err = h.Annotate(trace.Emission{Kind: trace.KindEnd})
	require.NoError(t, err)
	assert.Empty(t, note, "nil return")

	note, err = h.Annotate(trace.Emission{Kind: trace.KindStart})
	require.NoError(t, err)
	assert.Empty(t, note, "undefined hook")
}

func TestHook_State(t *testing.T) {
	h := mustLoad(t, `
count = 0
function on_wheel(e)
	count = count + 1
	return tostring(count)
end
`)

	for _, want := range []string{"1", "2", "3"} {
		note, err := h.Annotate(trace.Emission{Kind: trace.KindWheel})
		require.NoError(t, err)
		assert.Equal(t, want, note)
	}
}

func TestHook_Defined(t *testing.T) {
	h := mustLoad(t, `
function on_rescroll(e) end
function on_wheel_start(e) end
on_wheel = 5
`)
	assert.Equal(t, []string{"on_wheel_start", "on_rescroll"}, h.Defined())
}

func TestHook_Errors(t *testing.T) {
	h := mustLoad(t, `
function on_wheel(e)
	error("boom")
end

function on_wheel_end(e)
	return {}
end
`)

	_, err := h.Annotate(trace.Emission{Kind: trace.KindWheel})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "on_wheel")
	assert.Contains(t, err.Error(), "boom")

	_, err = h.Annotate(trace.Emission{Kind: trace.KindEnd})
	assert.ErrorIs(t, err, ErrBadReturn)
	assert.Contains(t, err.Error(), "on_wheel_end")
}

func TestHook_Timeout(t *testing.T) {
	h := mustLoad(t, `
function on_wheel(e)
	while true do end
end
`, WithTimeout(50*time.Millisecond))

	_, err := h.Annotate(trace.Emission{Kind: trace.KindWheel})
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Contains(t, err.Error(), "on_wheel")
}

func TestLoadString_Errors(t *testing.T) {
	_, err := LoadString("broken.lua", "function (")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.lua")

	_, err = LoadString("boom.lua", `error("at load")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at load")
}

func TestSandbox(t *testing.T) {
	for _, name := range []string{"io", "os", "debug", "package", "dofile", "loadfile", "load", "loadstring", "require"} {
		t.Run(name, func(t *testing.T) {
			h := mustLoad(t, "function on_wheel(e) return type("+name+") end")
			note, err := h.Annotate(trace.Emission{Kind: trace.KindWheel})
			require.NoError(t, err)
			assert.Equal(t, "nil", note)
		})
	}

	h := mustLoad(t, `function on_wheel(e) return type(math.floor) .. type(table.insert) end`)
	note, err := h.Annotate(trace.Emission{Kind: trace.KindWheel})
	require.NoError(t, err)
	assert.Equal(t, "functionfunction", note)
}

func TestHook_PrintLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLogger(logging.LoggerConfig{
		Level:    logging.LogLevelInfo,
		Output:   &buf,
		Format:   logging.FormatJSON,
		OmitTime: true,
	})

	mustLoad(t, `print("hello", 42)`, WithLogger(logger))
	assert.Contains(t, buf.String(), `"text":"hello\t42"`)
}

func TestHook_Close(t *testing.T) {
	h, err := LoadString("test.lua", "function on_wheel(e) return 'x' end")
	require.NoError(t, err)

	h.Close()
	h.Close()

	_, err = h.Annotate(trace.Emission{Kind: trace.KindWheel})
	assert.ErrorIs(t, err, ErrClosed)
	assert.Nil(t, h.Defined())
}

func TestLoad_ReplayAnnotator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hooks.lua")
	require.NoError(t, os.WriteFile(path, []byte(`
function on_wheel_start(e) return "begin" end
function on_wheel_end(e) return "done at " .. e.t end
`), 0o644))

	h, err := Load(path)
	require.NoError(t, err)
	defer h.Close()
	assert.Equal(t, path, h.Name())

	records := []trace.Record{
		{Offset: 0, Event: wheel.RawEvent{Type: "wheel", DeltaY: 4}},
		{Offset: 10 * time.Millisecond, Event: wheel.RawEvent{Type: "wheel", DeltaY: 4}},
	}
	emissions, err := trace.Replay(records, trace.Options{Annotate: h.Annotate})
	require.NoError(t, err)
	require.Len(t, emissions, 4)

	assert.Equal(t, "begin", emissions[0].Annotation)
	assert.Empty(t, emissions[1].Annotation)
	assert.Equal(t, "done at 110", emissions[3].Annotation)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.lua"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHookName(t *testing.T) {
	assert.Equal(t, "on_wheel_start", HookName(trace.KindStart))
	assert.Equal(t, "on_rescroll", HookName(trace.KindRescroll))
	assert.Empty(t, HookName(trace.Kind("other")))
}
