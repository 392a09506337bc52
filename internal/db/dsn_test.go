package db

import "testing"

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		readOnly bool
		want     string
	}{
		{
			name:     "plain path read-only",
			path:     "Resources/hawaii.sqlite",
			readOnly: true,
			want:     "file:Resources/hawaii.sqlite?_busy_timeout=5000&mode=ro&_query_only=true",
		},
		{
			name: "plain path writable",
			path: "/tmp/hawaii.sqlite",
			want: "file:/tmp/hawaii.sqlite?_busy_timeout=5000&_foreign_keys=on",
		},
		{
			name:     "file uri without params",
			path:     "file:/data/hawaii.sqlite",
			readOnly: true,
			want:     "file:/data/hawaii.sqlite?_busy_timeout=5000&mode=ro&_query_only=true",
		},
		{
			name:     "file uri with params",
			path:     "file:/data/hawaii.sqlite?cache=shared",
			readOnly: true,
			want:     "file:/data/hawaii.sqlite?cache=shared&_busy_timeout=5000&mode=ro&_query_only=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildDSN(tt.path, tt.readOnly); got != tt.want {
				t.Errorf("buildDSN(%q, %v) = %q, want %q", tt.path, tt.readOnly, got, tt.want)
			}
		})
	}
}
