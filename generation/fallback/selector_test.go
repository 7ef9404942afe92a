package fallback

import (
	"testing"
)

func TestCategory(t *testing.T) {
	tests := []struct {
		prompt string
		want   string
	}{
		{"a walk in the rain", "urban"},
		{"busy city street at night", "urban"},
		{"quiet forest morning", "nature"},
		{"sweeping mountain landscape", "nature"},
		{"a woman walking her dog", "character"},
		{"person talking to camera", "character"},
		{"abstract particle swirl", "motion"},
		{"", "motion"},
	}

	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			got := Category(tt.prompt)
			if got != tt.want {
				t.Errorf("Category(%q) = %v, want %v", tt.prompt, got, tt.want)
			}
		})
	}
}

func TestCategoryOrderIsFixed(t *testing.T) {
	// "rainy forest" matches both urban ("rain") and nature ("forest"),
	// urban is evaluated first and must win.
	if got := Category("rainy forest"); got != "urban" {
		t.Errorf("Category(\"rainy forest\") = %v, want urban", got)
	}
}

func TestCategoryCaseInsensitive(t *testing.T) {
	if Category("A WALK IN THE RAIN") != Category("a walk in the rain") {
		t.Error("Category should be case-insensitive")
	}
}

func TestPickIsPure(t *testing.T) {
	first := Pick("quiet forest morning")
	second := Pick("quiet forest morning")
	if first.URL != second.URL || first.ThumbnailURL != second.ThumbnailURL {
		t.Error("Pick should return the same asset for the same prompt")
	}
	if first.URL == "" || first.ThumbnailURL == "" {
		t.Error("Pick should always return a hosted sample with a thumbnail")
	}
	if !first.Demo {
		t.Error("Pick assets must be flagged as demo")
	}
}
