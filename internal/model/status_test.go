package model

import "testing"

func TestStatusKind_String(t *testing.T) {
	tests := []struct {
		kind     StatusKind
		expected string
	}{
		{StatusNoData, "NO_DATA"},
		{StatusPaused, "PAUSED"},
		{StatusDownloading, "DOWNLOADING"},
	}

	for _, test := range tests {
		if got := test.kind.String(); got != test.expected {
			t.Errorf("StatusKind.String() = %s, expected %s", got, test.expected)
		}
	}
}

func TestDownloadStatus_RateMbps(t *testing.T) {
	status := DownloadStatus{Kind: StatusNoData}
	if _, ok := status.RateMbps(); ok {
		t.Error("NoData status should not carry a rate")
	}

	rate := 0.0
	status = DownloadStatus{Kind: StatusPaused, Rate: &rate}
	got, ok := status.RateMbps()
	if !ok || got != 0 {
		t.Errorf("RateMbps() = %v, %v, expected 0, true", got, ok)
	}
}

func TestManifestRecord_Active(t *testing.T) {
	tests := []struct {
		flags    uint64
		expected bool
	}{
		{4, false},
		{2, true},
		{6, true},
		{1026, true},
	}

	for _, test := range tests {
		r := ManifestRecord{StateFlags: test.flags}
		if got := r.Active(); got != test.expected {
			t.Errorf("ManifestRecord{StateFlags: %d}.Active() = %v, expected %v", test.flags, got, test.expected)
		}
	}
}
