package form

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryForm(t *testing.T, query string, keepBlank bool) *Form {
	t.Helper()

	frm, err := New(Config{
		Environ: Environ{Vars: map[string]string{
			envRequestMethod: "GET",
			envQueryString:   query,
		}},
		KeepBlankValues: keepBlank,
	})
	require.NoError(t, err)

	return frm
}

func TestFormGetValue(t *testing.T) {
	frm := queryForm(t, "x=1&x=2&y=3", false)

	assert.Equal(t, []any{"1", "2"}, frm.GetValue("x"), "repeated name collapses to a list")
	assert.Equal(t, "3", frm.GetValue("y"), "single occurrence stays scalar")
	assert.Nil(t, frm.GetValue("missing"))
}

func TestFormGetFirst(t *testing.T) {
	frm := queryForm(t, "x=1&x=2&y=3", false)

	assert.Equal(t, "1", frm.GetFirst("x"))
	assert.Equal(t, "3", frm.GetFirst("y"))
	assert.Nil(t, frm.GetFirst("missing"))

	for _, name := range frm.Names() {
		list := frm.GetList(name)
		require.NotEmpty(t, list)
		assert.Equal(t, list[0], frm.GetFirst(name))
	}
}

func TestFormGetList(t *testing.T) {
	frm := queryForm(t, "x=1&x=2&y=3", false)

	assert.Equal(t, []any{"1", "2"}, frm.GetList("x"))
	assert.Equal(t, []any{"3"}, frm.GetList("y"), "singleton is not unwrapped")
	assert.Empty(t, frm.GetList("missing"))
	assert.NotNil(t, frm.GetList("missing"))
}

func TestFormGet(t *testing.T) {
	frm := queryForm(t, "x=1&x=2", false)

	fields, err := frm.Get("x")
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "x", fields[0].Name)

	_, err = frm.Get("missing")
	assert.ErrorIs(t, err, ErrFieldNotFound)
}

func TestFormNamesAndLen(t *testing.T) {
	frm := queryForm(t, "b=1&a=2&b=3&c=4", false)

	assert.Equal(t, []string{"b", "a", "c"}, frm.Names(), "names follow first occurrence order")
	assert.Equal(t, 3, frm.Len())
	assert.True(t, frm.Has("a"))
	assert.False(t, frm.Has("z"))
}

func TestFormValues(t *testing.T) {
	frm := queryForm(t, "x=1&x=2&y=3", false)

	assert.Equal(t, map[string]any{
		"x": []any{"1", "2"},
		"y": "3",
	}, frm.Values())
}

func TestFormBlankValuePolicy(t *testing.T) {
	t.Run("dropped by default", func(t *testing.T) {
		frm := queryForm(t, "x=&y=1", false)

		assert.False(t, frm.Has("x"))
		assert.Equal(t, "1", frm.GetValue("y"))
	})

	t.Run("kept when requested", func(t *testing.T) {
		frm := queryForm(t, "x=&y=1", true)

		assert.Equal(t, "", frm.GetValue("x"))
		assert.Equal(t, "1", frm.GetValue("y"))
	})
}

func TestFieldFileRoundTrip(t *testing.T) {
	frm := queryForm(t, "greeting=hello+there", false)

	fields, err := frm.Get("greeting")
	require.NoError(t, err)
	require.Len(t, fields, 1)

	fld := fields[0]
	require.NotNil(t, fld.File)

	content, err := io.ReadAll(fld.File)
	require.NoError(t, err)
	assert.Equal(t, "hello there", string(content))

	// The stream is rewindable and independent of Value.
	_, err = fld.File.Seek(0, io.SeekStart)
	require.NoError(t, err)

	again, err := io.ReadAll(fld.File)
	require.NoError(t, err)
	assert.Equal(t, content, again)

	text, ok := fld.Value.Text()
	require.True(t, ok)
	assert.Equal(t, string(content), text)
}

func TestFromRequest(t *testing.T) {
	t.Run("get decodes the raw query", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/submit?x=1&x=2", nil)

		frm, err := FromRequest(r, false)
		require.NoError(t, err)

		assert.Equal(t, []any{"1", "2"}, frm.GetValue("x"))
	})

	t.Run("post decodes the body", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/submit", strings.NewReader("a=1&b=2"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		frm, err := FromRequest(r, false)
		require.NoError(t, err)

		assert.Equal(t, "1", frm.GetValue("a"))
		assert.Equal(t, "2", frm.GetValue("b"))
	})

	t.Run("json body", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/submit", strings.NewReader(`{"n":41}`))
		r.Header.Set("Content-Type", "application/json")

		frm, err := FromRequest(r, false)
		require.NoError(t, err)

		assert.Equal(t, float64(41), frm.GetValue("n"))
	})
}

func TestValueAccessors(t *testing.T) {
	text := TextValue("hi")
	assert.Equal(t, KindText, text.Kind())
	assert.Equal(t, "hi", text.Raw())

	s, ok := text.Text()
	assert.True(t, ok)
	assert.Equal(t, "hi", s)

	_, ok = text.Bytes()
	assert.False(t, ok)

	raw := BytesValue([]byte{1, 2})
	assert.Equal(t, KindBytes, raw.Kind())
	assert.Equal(t, []byte{1, 2}, raw.Raw())

	decoded := JSONValue(map[string]any{"a": true})
	assert.Equal(t, KindJSON, decoded.Kind())

	v, ok := decoded.JSON()
	assert.True(t, ok)
	assert.Equal(t, map[string]any{"a": true}, v)

	assert.Equal(t, "text", KindText.String())
	assert.Equal(t, "bytes", KindBytes.String())
	assert.Equal(t, "json", KindJSON.String())
}
