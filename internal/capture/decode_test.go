package capture

import (
	"encoding/base64"
	"errors"
	"testing"
)

func TestDecodeBody_Plain(t *testing.T) {
	got, err := DecodeBody(`{"items":[]}`, false)
	if err != nil {
		t.Fatalf("DecodeBody() error = %v", err)
	}
	if string(got) != `{"items":[]}` {
		t.Errorf("DecodeBody() = %q", got)
	}
}

func TestDecodeBody_Base64(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte(`{"items":[]}`))

	got, err := DecodeBody(encoded, true)
	if err != nil {
		t.Fatalf("DecodeBody() error = %v", err)
	}
	if string(got) != `{"items":[]}` {
		t.Errorf("DecodeBody() = %q", got)
	}
}

func TestDecodeBody_InvalidBase64(t *testing.T) {
	_, err := DecodeBody("not%%%base64", true)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("DecodeBody() error = %v, want ErrDecode", err)
	}
}
