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

package payload

import (
	"reflect"
	"testing"

	"github.com/openshift-eng/artrel/pkg/assembly"
)

func siblingBuild(nvr, url, commit string) *assembly.Build {
	return &assembly.Build{ID: nvr, NVR: nvr, SourceURL: url, SourceCommit: commit}
}

func TestFindMismatchedSiblings(t *testing.T) {
	tests := []struct {
		name   string
		builds []*assembly.Build
		want   []string
	}{
		{
			name: "conflicting commits reports every sibling",
			builds: []*assembly.Build{
				siblingBuild("a-1-1", "https://github.com/openshift/shared", "abc"),
				siblingBuild("b-1-1", "https://github.com/openshift/shared", "def"),
			},
			want: []string{"a-1-1", "b-1-1"},
		},
		{
			name: "three siblings all reported on any conflict",
			builds: []*assembly.Build{
				siblingBuild("a-1-1", "https://github.com/openshift/shared", "abc"),
				siblingBuild("b-1-1", "https://github.com/openshift/shared", "abc"),
				siblingBuild("c-1-1", "https://github.com/openshift/shared", "def"),
			},
			want: []string{"a-1-1", "b-1-1", "c-1-1"},
		},
		{
			name: "matching commits report nothing",
			builds: []*assembly.Build{
				siblingBuild("a-1-1", "https://github.com/openshift/shared", "abc"),
				siblingBuild("b-1-1", "https://github.com/openshift/shared", "abc"),
				siblingBuild("c-1-1", "https://github.com/openshift/shared", "abc"),
			},
			want: nil,
		},
		{
			name: "distinct repos never conflict",
			builds: []*assembly.Build{
				siblingBuild("a-1-1", "https://github.com/openshift/a", "abc"),
				siblingBuild("b-1-1", "https://github.com/openshift/b", "def"),
			},
			want: nil,
		},
		{
			name: "distgit only components are exempt",
			builds: []*assembly.Build{
				siblingBuild("a-1-1", "", ""),
				siblingBuild("b-1-1", "", ""),
			},
			want: nil,
		},
		{
			name: "nil builds are skipped",
			builds: []*assembly.Build{
				nil,
				siblingBuild("a-1-1", "https://github.com/openshift/a", "abc"),
			},
			want: nil,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var got []string
			for _, b := range FindMismatchedSiblings(test.builds) {
				got = append(got, b.NVR)
			}
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("FindMismatchedSiblings() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestFindStaleRPMs(t *testing.T) {
	latest := map[string]string{
		"openssl": "openssl-1.1.1k-6.el8",
		"kernel":  "kernel-4.18.0-305.el8",
	}
	tests := []struct {
		name      string
		installed []string
		want      []string
		wantErr   bool
	}{
		{
			name:      "stale rpm flagged",
			installed: []string{"openssl-1.1.1k-5.el8", "kernel-4.18.0-305.el8"},
			want:      []string{"installed openssl-1.1.1k-5.el8 but candidate tag has openssl-1.1.1k-6.el8"},
		},
		{
			name:      "current rpms pass",
			installed: []string{"openssl-1.1.1k-6.el8", "kernel-4.18.0-305.el8"},
			want:      nil,
		},
		{
			name:      "unshipped packages are never flagged",
			installed: []string{"glibc-2.28-151.el8"},
			want:      nil,
		},
		{
			name:      "malformed nvr is an error",
			installed: []string{"garbage"},
			wantErr:   true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := FindStaleRPMs(test.installed, latest)
			if test.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("FindStaleRPMs() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestFindRHCOSRPMInconsistencies(t *testing.T) {
	tests := []struct {
		name   string
		builds []*assembly.RHCOSBuild
		want   map[string][]string
	}{
		{
			name: "version divergence reported with all nvrs",
			builds: []*assembly.RHCOSBuild{
				{ID: "b1", Arch: "x86_64", RPMs: []string{"foo-1.0-1.el8", "bar-2.0-1.el8"}},
				{ID: "b2", Arch: "s390x", RPMs: []string{"foo-1.1-1.el8", "bar-2.0-1.el8"}},
			},
			want: map[string][]string{
				"foo": {"foo-1.0-1.el8", "foo-1.1-1.el8"},
			},
		},
		{
			name: "identical versions report nothing",
			builds: []*assembly.RHCOSBuild{
				{ID: "b1", Arch: "x86_64", RPMs: []string{"foo-1.0-1.el8"}},
				{ID: "b2", Arch: "s390x", RPMs: []string{"foo-1.0-1.el8"}},
			},
			want: map[string][]string{},
		},
		{
			name: "rpm sets may differ as long as versions agree",
			builds: []*assembly.RHCOSBuild{
				{ID: "b1", Arch: "x86_64", RPMs: []string{"foo-1.0-1.el8", "amd-only-1.0-1.el8"}},
				{ID: "b2", Arch: "s390x", RPMs: []string{"foo-1.0-1.el8"}},
			},
			want: map[string][]string{},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := FindRHCOSRPMInconsistencies(test.builds)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("FindRHCOSRPMInconsistencies() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestFindRHCOSRPMInconsistencies_MalformedNVR(t *testing.T) {
	builds := []*assembly.RHCOSBuild{{ID: "b1", Arch: "x86_64", RPMs: []string{"garbage"}}}
	if _, err := FindRHCOSRPMInconsistencies(builds); err == nil {
		t.Fatal("expected error for malformed NVR")
	}
}
