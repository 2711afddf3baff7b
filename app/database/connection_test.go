package database

import (
	"testing"
)

func TestNewConnection_InvalidHost(t *testing.T) {
	_, err := NewConnection("256.256.256.256", "5432", "user", "pass", "db")
	if err == nil {
		t.Error("Expected error for unreachable database host")
	}
}
