package desensitize

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuiltinRules(t *testing.T) {
	hook := NewHook()
	hook.AddBuiltin(BuiltinRules()...)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"phone", `sent SMS to +1 (555) 010-2030`, `sent SMS to ***-***-2030`},
		{"plain phone", `phone=5550102030`, `phone=***-***-2030`},
		{"email", `contact jane.roe@example.com`, `contact j***e@example.com`},
		{"password field", `{"email":"x","password":"hunter2"}`, `{"email":"x","password":"******"}`},
		{"untouched", `loaded 12 locations`, `loaded 12 locations`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hook.Desensitize(tt.in))
		})
	}
}

func TestHookRules(t *testing.T) {
	hook := NewHook()
	hook.AddRule(EmailRule)
	hook.AddRule(EmailRule)
	assert.Equal(t, 1, hook.RuleCount())

	assert.True(t, hook.RemoveRule("email"))
	assert.False(t, hook.RemoveRule("email"))
	assert.Equal(t, "a.b@example.com", hook.Desensitize("a.b@example.com"))
}

func TestDisabledRule(t *testing.T) {
	r := MustNewContentRule("digits", `\d+`, "#")
	hook := NewHook()
	hook.AddRule(r)

	assert.Equal(t, "id #", hook.Desensitize("id 42"))
	r.SetEnabled(false)
	assert.Equal(t, "id 42", hook.Desensitize("id 42"))
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	hook := NewHook()
	hook.AddRule(TokenRule)
	w := NewWriter(&buf, hook)

	in := []byte(`{"token":"abc.def","path":"/rc/update"}`)
	n, err := w.Write(in)
	assert.NoError(t, err)
	assert.Equal(t, len(in), n)
	assert.Equal(t, `{"token":"******","path":"/rc/update"}`, buf.String())
}
