package fonts

import "testing"

func TestFaces(t *testing.T) {
	regular, err := Regular(14)
	if err != nil {
		t.Fatalf("Regular() error: %v", err)
	}
	if regular == nil {
		t.Fatal("Regular() returned nil face")
	}

	bold, err := Bold(14)
	if err != nil {
		t.Fatalf("Bold() error: %v", err)
	}
	if bold == nil {
		t.Fatal("Bold() returned nil face")
	}
}

func TestFaceMetricsScaleWithSize(t *testing.T) {
	small, err := Bold(10)
	if err != nil {
		t.Fatalf("Bold(10) error: %v", err)
	}
	large, err := Bold(40)
	if err != nil {
		t.Fatalf("Bold(40) error: %v", err)
	}

	if small.Metrics().Height >= large.Metrics().Height {
		t.Errorf("Height(10pt) = %v should be less than Height(40pt) = %v",
			small.Metrics().Height, large.Metrics().Height)
	}
}
