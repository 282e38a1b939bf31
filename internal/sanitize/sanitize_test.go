package sanitize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEscapeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain text passes through", input: "hello world", expected: "hello world"},
		{name: "all special characters", input: `<b>&'"</b>`, expected: "&lt;b&gt;&amp;&#039;&quot;&lt;/b&gt;"},
		{name: "script tag", input: "<script>alert('x')</script>", expected: "&lt;script&gt;alert(&#039;x&#039;)&lt;/script&gt;"},
		{name: "already escaped input escapes again", input: "&lt;", expected: "&amp;lt;"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, EscapeText(tt.input))
		})
	}
}

func TestTextToHTML(t *testing.T) {
	t.Run("newlines become breaks after escaping", func(t *testing.T) {
		require.Equal(t, "line one<br>line two", TextToHTML("line one\nline two"))
	})

	t.Run("markup in the text never survives", func(t *testing.T) {
		require.Equal(t, "&lt;br&gt;<br>next", TextToHTML("<br>\nnext"))
	})
}
