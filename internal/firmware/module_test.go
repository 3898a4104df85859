package firmware_test

import (
	"testing"

	"github.com/keyboardio/testplan/internal/firmware"
	"github.com/stretchr/testify/assert"
)

func TestModuleDigestDistinguishesUnsetFromEmpty(t *testing.T) {
	t.Parallel()

	unset := firmware.Module{URL: firmware.Set("A")}
	empty := firmware.Module{URL: firmware.Set("A"), Commit: firmware.Set("")}

	assert.NotEqual(t, unset.Digest(), empty.Digest())
}

func TestModuleDigestIsFieldAware(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		a, b firmware.Module
	}{
		{
			name: "values do not shift between fields",
			a:    firmware.Module{URL: firmware.Set("ab"), Commit: firmware.Set("c")},
			b:    firmware.Module{URL: firmware.Set("a"), Commit: firmware.Set("bc")},
		},
		{
			name: "same text in a different field",
			a:    firmware.Module{URL: firmware.Set("core")},
			b:    firmware.Module{Name: firmware.Set("core")},
		},
		{
			name: "commit pinned",
			a:    firmware.Module{URL: firmware.Set("A"), Name: firmware.Set("core")},
			b:    firmware.Module{URL: firmware.Set("A"), Commit: firmware.Set("v1"), Name: firmware.Set("core")},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.NotEqual(t, tc.a.Digest(), tc.b.Digest())
		})
	}
}

func TestModuleDigestIsStable(t *testing.T) {
	t.Parallel()

	module := firmware.Module{URL: firmware.Set("A"), Name: firmware.Set("core")}
	same := firmware.Module{URL: firmware.Set("A"), Name: firmware.Set("core")}

	assert.Equal(t, module.Digest(), same.Digest())
	assert.Len(t, module.Digest(), 64)
	assert.Regexp(t, "^[0-9a-f]+$", module.Digest())
}

func TestSameModule(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		a, b     firmware.Module
		expected bool
	}{
		{
			name:     "equal names",
			a:        firmware.Module{URL: firmware.Set("A"), Name: firmware.Set("core")},
			b:        firmware.Module{URL: firmware.Set("B"), Name: firmware.Set("core")},
			expected: true,
		},
		{
			name: "different names",
			a:    firmware.Module{Name: firmware.Set("core")},
			b:    firmware.Module{Name: firmware.Set("plugin")},
		},
		{
			name: "both unnamed",
			a:    firmware.Module{URL: firmware.Set("A")},
			b:    firmware.Module{URL: firmware.Set("A")},
		},
		{
			name: "one unnamed",
			a:    firmware.Module{Name: firmware.Set("")},
			b:    firmware.Module{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, tc.a.SameModule(tc.b))
		})
	}
}

func TestFieldFrom(t *testing.T) {
	t.Parallel()

	text := ""

	assert.False(t, firmware.FieldFrom(nil).IsSet())
	assert.True(t, firmware.FieldFrom(&text).IsSet())
	assert.True(t, firmware.FieldFrom(&text).Equal(firmware.Set("")))
	assert.False(t, firmware.Unset().Equal(firmware.Set("")))
}

func TestFileRefSamePath(t *testing.T) {
	t.Parallel()

	var none *firmware.FileRef

	assert.True(t, none.SamePath(nil))
	assert.False(t, none.SamePath(firmware.NewFileRef("/a/sketch.ino")))
	assert.True(t, firmware.NewFileRef("/a/sketch.ino").SamePath(firmware.NewFileRef("/a/sketch.ino")))
	assert.False(t, firmware.NewFileRef("/a/sketch.ino").SamePath(firmware.NewFileRef("/b/sketch.ino")))
}
