/*
Copyright 2026 The artrel Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package assembly

import (
	"testing"
)

func TestParseNVR(t *testing.T) {
	tests := []struct {
		nvr     string
		name    string
		version string
		release string
		wantErr bool
	}{
		{
			nvr:     "openssl-1.1.1k-5.el8_5",
			name:    "openssl",
			version: "1.1.1k",
			release: "5.el8_5",
		},
		{
			nvr:     "openshift-clients-4.9.0-202110121402.p0.git.96e95ce.assembly.stream.el8",
			name:    "openshift-clients",
			version: "4.9.0",
			release: "202110121402.p0.git.96e95ce.assembly.stream.el8",
		},
		{
			nvr:     "NetworkManager-libnm-1.30.0-13.el8_4",
			name:    "NetworkManager-libnm",
			version: "1.30.0",
			release: "13.el8_4",
		},
		{
			nvr:     "no-release",
			wantErr: true,
		},
		{
			nvr:     "bare",
			wantErr: true,
		},
		{
			nvr:     "",
			wantErr: true,
		},
		{
			nvr:     "trailing-1.0-",
			wantErr: true,
		},
	}
	for _, test := range tests {
		t.Run(test.nvr, func(t *testing.T) {
			name, version, release, err := ParseNVR(test.nvr)
			if test.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got none", test.nvr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if name != test.name || version != test.version || release != test.release {
				t.Errorf("ParseNVR(%q) = (%q, %q, %q), want (%q, %q, %q)", test.nvr, name, version, release, test.name, test.version, test.release)
			}
		})
	}
}

func TestRPMName(t *testing.T) {
	name, err := RPMName("kernel-rt-core-4.18.0-305.el8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "kernel-rt-core" {
		t.Errorf("unexpected name: %q", name)
	}
}
