package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCheckCommandFailsAgainstEmptyServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/" {
			w.Write([]byte(`{"message":"ok"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Not Found"}`))
	}))
	defer srv.Close()

	out := &bytes.Buffer{}
	Cmd.SetOut(out)
	Cmd.SetArgs([]string{"check", "--base-url", srv.URL, "--env-file", ""})

	err := Cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "checks failed") {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(out.String(), "[PASS] Server Health Check") || !strings.Contains(out.String(), "[FAIL] Dashboard Stats API") {
		t.Fatalf("output:\n%s", out.String())
	}
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"seed", "check"} {
		cmd, _, err := Cmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("%s not registered: %v", name, err)
		}
	}
}
