package radio

import "testing"

func TestRegionCatalogueLayout(t *testing.T) {
	for _, m := range Models {
		t.Run(m.Name, func(t *testing.T) {
			prev := 0
			for _, r := range m.Regions {
				if r.Length <= 0 {
					t.Errorf("region %s: length %d, want > 0", r.Name, r.Length)
				}
				if r.Offset < prev {
					t.Errorf("region %s overlaps previous region: offset %d < %d", r.Name, r.Offset, prev)
				}
				if r.End() > m.ImageSize {
					t.Errorf("region %s ends at %#x, past image size %#x", r.Name, r.End(), m.ImageSize)
				}
				prev = r.End()
			}
		})
	}
}

func TestRegionDeviceManaged(t *testing.T) {
	managed := map[RegionID]bool{
		RegionHead:    true,
		RegionInfo:    true,
		RegionVersion: true,
		RegionZones:   true,
	}

	for _, r := range HA1G.Regions {
		if r.DeviceManaged != managed[r.ID] {
			t.Errorf("region %s: DeviceManaged = %v, want %v", r.Name, r.DeviceManaged, managed[r.ID])
		}
	}
}

func TestModelByName(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
		found bool
	}{
		{name: "exact", query: "HA1G", want: "HA1G", found: true},
		{name: "lowercase", query: "ha1uv", want: "HA1UV", found: true},
		{name: "mixed case", query: "Ha1g", want: "HA1G", found: true},
		{name: "unknown", query: "HA9X", found: false},
		{name: "empty", query: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := ModelByName(tt.query)
			if ok != tt.found {
				t.Fatalf("ModelByName(%q) found = %v, want %v", tt.query, ok, tt.found)
			}
			if ok && m.Name != tt.want {
				t.Errorf("ModelByName(%q) = %s, want %s", tt.query, m.Name, tt.want)
			}
		})
	}
}

func TestModelTotals(t *testing.T) {
	var download, upload int
	for _, r := range HA1G.Regions {
		download += r.Length
		if !r.DeviceManaged {
			upload += r.Length
		}
	}

	if got := HA1G.DownloadTotal(); got != download {
		t.Errorf("DownloadTotal() = %d, want %d", got, download)
	}
	if got := HA1G.UploadTotal(); got != upload {
		t.Errorf("UploadTotal() = %d, want %d", got, upload)
	}
	if HA1G.UploadTotal() >= HA1G.DownloadTotal() {
		t.Error("UploadTotal() should exclude device-managed regions")
	}
}
