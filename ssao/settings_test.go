package ssao

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/chewxy/math32"

	"ssao-engine/math"
)

func TestDefaultSettingsValid(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	s.ContactShadows = DefaultContactShadowSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("contact shadow defaults invalid: %v", err)
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{"zero radius", func(s *Settings) { s.Radius = 0 }},
		{"nan radius", func(s *Settings) { s.Radius = math32.NaN() }},
		{"zero samples", func(s *Settings) { s.SampleCount = 0 }},
		{"too many samples", func(s *Settings) { s.SampleCount = MaxSampleCount + 1 }},
		{"negative power", func(s *Settings) { s.Power = -1 }},
		{"negative intensity", func(s *Settings) { s.IntensityScale = -0.5 }},
		{"horizon past vertical", func(s *Settings) { s.MinHorizonAngle = 2 }},
		{"negative mip", func(s *Settings) { s.MaxMipLevel = -1 }},
		{"zero far plane", func(s *Settings) { s.FarPlane = 0 }},
		{"zero spatial sigma", func(s *Settings) { s.SpatialSigma = 0 }},
		{"infinite range sigma", func(s *Settings) { s.RangeSigma = math32.Inf(1) }},
		{"max blur above one", func(s *Settings) { s.MaxBlur = 2 }},
		{"zero light", func(s *Settings) {
			s.ContactShadows = DefaultContactShadowSettings()
			s.ContactShadows.LightDirection = math.Vec3Zero
		}},
		{"flat cone", func(s *Settings) {
			s.ContactShadows = DefaultContactShadowSettings()
			s.ContactShadows.ConeAngle = 0
		}},
		{"too many rays", func(s *Settings) {
			s.ContactShadows = DefaultContactShadowSettings()
			s.ContactShadows.RayCount = MaxContactRayCount + 1
		}},
		{"zero contact samples", func(s *Settings) {
			s.ContactShadows = DefaultContactShadowSettings()
			s.ContactShadows.SampleCount = 0
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(&s)
			err := s.Validate()
			if !errors.Is(err, ErrInvalidSettings) {
				t.Fatalf("Validate() = %v, want ErrInvalidSettings", err)
			}
		})
	}
}

func TestLoadSettingsOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ssao.json")
	data := `{"radius": 0.5, "sampleCount": 16, "contactShadows": {"lightDirection": {"X": 0, "Y": 1, "Z": 0}, "shadowDistance": 0.2, "coneAngle": 0.5, "contactDistanceMax": 1, "intensity": 1, "sampleCount": 8, "rayCount": 2}}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.Radius != 0.5 || s.SampleCount != 16 {
		t.Errorf("overrides not applied: radius %v, samples %d", s.Radius, s.SampleCount)
	}
	if s.FarPlane != 50 || s.RangeSigma != 0.2 {
		t.Errorf("defaults lost: far %v, range sigma %v", s.FarPlane, s.RangeSigma)
	}
	if s.ContactShadows == nil || s.ContactShadows.RayCount != 2 {
		t.Errorf("contact shadows = %+v", s.ContactShadows)
	}
}

func TestLoadSettingsRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"sampleCount": 0}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSettings(bad); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("LoadSettings(sampleCount 0) = %v", err)
	}

	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte(`{"radius":`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSettings(broken); err == nil {
		t.Error("LoadSettings accepted truncated JSON")
	}

	if _, err := LoadSettings(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadSettings(missing) = %v", err)
	}
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	want := DefaultSettings()
	want.Radius = 2
	want.ContactShadows = DefaultContactShadowSettings()
	if err := SaveSettings(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Radius != 2 || got.ContactShadows == nil || *got.ContactShadows != *want.ContactShadows {
		t.Errorf("round trip: got %+v", got)
	}
}
