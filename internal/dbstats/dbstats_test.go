// Copyright (c) 2025 Vida com Deus
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dbstats

import (
	"testing"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name string
		n    int64
		want string
	}{
		{name: "bytes", n: 512, want: "512 B"},
		{name: "kibibytes", n: 2048, want: "2.0 KiB"},
		{name: "mebibytes", n: 5 * 1024 * 1024, want: "5.0 MiB"},
		{name: "gibibytes", n: 1503238553, want: "1.4 GiB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatBytes(tt.n); got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.n, got, tt.want)
			}
		})
	}
}

func TestReportDatabaseGB(t *testing.T) {
	r := &Report{DatabaseBytes: 2 * 1024 * 1024 * 1024}
	if got := r.DatabaseGB(); got != 2.0 {
		t.Errorf("DatabaseGB() = %v, want 2.0", got)
	}
}
