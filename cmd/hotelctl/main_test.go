package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommands(t *testing.T) {
	root := newRootCmd()
	want := map[string]bool{"migrate": false, "reconcile": false, "create-admin": false}
	for _, c := range root.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("subcommand %q not registered", name)
		}
	}
}

func TestCreateAdminRequiresFlags(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"create-admin", "--email", "a@b.com"})
	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "password") {
		t.Fatalf("err = %v, want missing password flag", err)
	}
}

func TestCreateAdminShortPassword(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"create-admin", "--email", "a@b.com", "--password", "123"})
	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "at least 6") {
		t.Fatalf("err = %v, want short password error", err)
	}
}
