package config

import (
	"os"
	"path/filepath"
	"testing"

	"estimatebuilder/services"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	b := s.Branding()
	if b != services.DefaultBranding() {
		t.Errorf("Branding() = %+v, want defaults", b)
	}
	if s.Currency() != services.CurrencyDollar {
		t.Errorf("Currency() = %q, want $", s.Currency())
	}
	if s.ExportDir != "exports" {
		t.Errorf("ExportDir = %q", s.ExportDir)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := "title: Sparky & Sons\ndefault_currency: EUR\nexport_dir: /tmp/out\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Title != "Sparky & Sons" {
		t.Errorf("Title = %q", s.Title)
	}
	if s.Subtitle != services.DefaultBranding().Subtitle {
		t.Errorf("Subtitle should keep its default, got %q", s.Subtitle)
	}
	if s.Currency() != services.CurrencyEuro {
		t.Errorf("Currency() = %q, want €", s.Currency())
	}
	if s.ExportDir != "/tmp/out" {
		t.Errorf("ExportDir = %q", s.ExportDir)
	}
}

func TestLoad_WorkingDirFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "estimate.yaml"), []byte("subtitle: Residential Wiring\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Subtitle != "Residential Wiring" {
		t.Errorf("Subtitle = %q", s.Subtitle)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ESTIMATE_THANK_YOU", "Cheers!")
	t.Setenv("ESTIMATE_MAIL_FROM", "office@example.com")

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.ThankYou != "Cheers!" {
		t.Errorf("ThankYou = %q", s.ThankYou)
	}
	if s.MailFrom != "office@example.com" {
		t.Errorf("MailFrom = %q", s.MailFrom)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error for a missing config file")
		}
	})

	t.Run("unknown currency", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("ESTIMATE_DEFAULT_CURRENCY", "XYZ")
		if _, err := Load(""); err == nil {
			t.Error("expected error for an unsupported currency")
		}
	})
}

func TestDefault(t *testing.T) {
	s := Default()
	if s.Title != services.DefaultBranding().Title {
		t.Errorf("Title = %q", s.Title)
	}
	if s.Currency() != services.DefaultCurrency {
		t.Errorf("Currency() = %q", s.Currency())
	}
}
