package settings

import (
	"testing"
)

func TestNewCliParams(t *testing.T) {
	want := Run{
		MinLogLevel: 0,
		Output:      "text",
	}
	got := NewCliParams()
	if *got != want {
		t.Errorf("NewCliParams() = %+v, want %+v", got, want)
	}
}

func TestVersionInformationDefaults(t *testing.T) {
	if VersionInformation.BuildVersion == "" || VersionInformation.Commit == "" {
		t.Errorf("VersionInformation should have non-empty defaults: %+v", VersionInformation)
	}
}
