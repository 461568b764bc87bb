package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"runtime"
	"strings"
	"testing"
)

func withTempHome(t *testing.T) func() {
	t.Helper()
	dir := t.TempDir()
	oldHOME, hadHOME := os.LookupEnv("HOME")
	oldUSERPROFILE, hadUSERPROFILE := os.LookupEnv("USERPROFILE")
	os.Setenv("HOME", dir)
	os.Setenv("USERPROFILE", dir)
	if runtime.GOOS == "windows" {
		os.Setenv("HOMEDRIVE", "")
		os.Setenv("HOMEPATH", "")
	}
	return func() {
		if hadHOME {
			os.Setenv("HOME", oldHOME)
		} else {
			os.Unsetenv("HOME")
		}
		if hadUSERPROFILE {
			os.Setenv("USERPROFILE", oldUSERPROFILE)
		} else {
			os.Unsetenv("USERPROFILE")
		}
	}
}

func TestRoot_Version(t *testing.T) {
	cleanup := withTempHome(t)
	defer cleanup()

	root := NewRootCmd("1.0.0", "2025-08-13")
	out := new(bytes.Buffer)
	root.SetOut(out)

	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "1.0.0") {
		t.Fatalf("version output missing version: %q", out.String())
	}
}

func TestRoot_UsersList(t *testing.T) {
	cleanup := withTempHome(t)
	defer cleanup()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/user" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"ok","data":[
			{"_id":"u1","name":"Ada","email":"ada@example.com","role":"USER","status":"active"}
		],"pagination":{"total":1,"page":1,"limit":10}}`))
	}))
	defer srv.Close()

	root := NewRootCmd("dev", "now")
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetArgs([]string{"users", "list", "--server", srv.URL + "/api/v1"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "ada@example.com") {
		t.Fatalf("user row missing: %q", got)
	}
	if !strings.Contains(got, "Page 1/1 (total 1)") {
		t.Fatalf("pagination footer missing: %q", got)
	}
}

func TestRoot_Stats(t *testing.T) {
	cleanup := withTempHome(t)
	defer cleanup()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/user/statistics":
			w.Write([]byte(`{"success":true,"data":{"totalUser":7,"totalOrder":3,"totalMeal":12,"totalNotification":2}}`))
		case "/api/v1/user/user-earning":
			w.Write([]byte(`{"success":true,"data":[{"month":"Jan","earning":99.5}]}`))
		case "/api/v1/user/user-statistics":
			w.Write([]byte(`{"success":true,"data":[{"month":"Jan","value":4}]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	root := NewRootCmd("dev", "now")
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetArgs([]string{"stats", "--server", srv.URL + "/api/v1"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "Total users:         7") {
		t.Fatalf("totals missing: %q", got)
	}
	if !strings.Contains(got, "$99.50") {
		t.Fatalf("earnings missing: %q", got)
	}
}
