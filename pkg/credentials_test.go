package pkg

import (
	"encoding/base64"
	"testing"
)

func TestEncodeCredentials(t *testing.T) {
	got := EncodeCredentials("client-id", "client-secret")

	decoded, err := base64.StdEncoding.DecodeString(got)
	if err != nil {
		t.Fatalf("expected valid base64, got %v", err)
	}
	if string(decoded) != "client-id:client-secret" {
		t.Fatalf("unexpected decoded credentials: %s", decoded)
	}
}
