package protocol

import (
	"testing"

	"github.com/projectdiscovery/lanbeacon/pkg/identity"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	names := []string{
		"alice",
		"bob",
		"with \"quotes\" and \\slashes\\",
		"<html> & friends",
		"tab\tand\nnewline",
		"日本語の名前",
		"emoji 🛰️",
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			id, err := identity.New(name)
			require.NoError(t, err)

			got, err := Decode(Encode(id))
			require.NoError(t, err)
			require.True(t, id.Equal(got), "round trip changed %q into %q", name, got.Name())
		})
	}
}

func TestEncodeShape(t *testing.T) {
	id, err := identity.New("alice")
	require.NoError(t, err)
	require.JSONEq(t, `{"name":"alice"}`, string(Encode(id)))
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		wantName string
		wantErr  bool
	}{
		{name: "minimal record", payload: `{"name":"bob"}`, wantName: "bob"},
		{name: "surrounding whitespace", payload: " \n{\"name\" : \"bob\"}\n", wantName: "bob"},
		{name: "unknown fields ignored", payload: `{"name":"bob","version":2}`, wantName: "bob"},
		{name: "escaped characters", payload: `{"name":"b\u00f6b"}`, wantName: "böb"},
		{name: "empty payload", payload: ``, wantErr: true},
		{name: "truncated", payload: `{"name":"bo`, wantErr: true},
		{name: "plain text", payload: `hello`, wantErr: true},
		{name: "array", payload: `["bob"]`, wantErr: true},
		{name: "bare string", payload: `"bob"`, wantErr: true},
		{name: "missing name", payload: `{"nick":"bob"}`, wantErr: true},
		{name: "numeric name", payload: `{"name":42}`, wantErr: true},
		{name: "null name", payload: `{"name":null}`, wantErr: true},
		{name: "object name", payload: `{"name":{"first":"bob"}}`, wantErr: true},
		{name: "empty name", payload: `{"name":""}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := Decode([]byte(tt.payload))
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, IsParseError(err), "expected *ParseError, got %T", err)
				require.True(t, id.IsZero())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantName, id.Name())
		})
	}
}

func TestDecodeEmptyNameWrapsIdentityError(t *testing.T) {
	_, err := Decode([]byte(`{"name":""}`))
	require.ErrorIs(t, err, identity.ErrEmptyName)
}
