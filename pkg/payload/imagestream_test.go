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
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"sigs.k8s.io/yaml"
)

func TestInconsistencyAnnotation(t *testing.T) {
	tests := []struct {
		name   string
		issues []string
		want   []string
		none   bool
	}{
		{
			name: "no issues means no annotation key",
			none: true,
		},
		{
			name:   "issues are sorted",
			issues: []string{"b issue", "a issue"},
			want:   []string{"a issue", "b issue"},
		},
		{
			name:   "more than five issues are truncated with a marker",
			issues: []string{"g", "f", "e", "d", "c", "b", "a"},
			want:   []string{"a", "b", "c", "d", "e", "(...and more)"},
		},
		{
			name:   "exactly five issues are not truncated",
			issues: []string{"e", "d", "c", "b", "a"},
			want:   []string{"a", "b", "c", "d", "e"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			annotations := inconsistencyAnnotation(test.issues)
			if test.none {
				if annotations != nil {
					t.Fatalf("expected no annotations, got %v", annotations)
				}
				return
			}
			value, ok := annotations[InconsistencyAnnotation]
			if !ok {
				t.Fatalf("annotation key missing from %v", annotations)
			}
			var got []string
			if err := json.Unmarshal([]byte(value), &got); err != nil {
				t.Fatalf("annotation value is not JSON: %v", err)
			}
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("annotation = %v, want %v", got, test.want)
			}
		})
	}
}

func TestBuildISTag(t *testing.T) {
	entry := NewComponentEntry(testComponent("etcd", "etcd", false, "x86_64"), testBuild("etcd"), testArchive("x86_64", "1"), "quay.io/org/repo:sha256-abc")
	istag := BuildISTag("etcd", entry)

	if istag.Name != "etcd" {
		t.Errorf("unexpected name %q", istag.Name)
	}
	if istag.From.Kind != "DockerImage" {
		t.Errorf("unexpected from kind %q", istag.From.Kind)
	}
	if istag.From.Name != "quay.io/org/repo:sha256-abc" {
		t.Errorf("unexpected from name %q", istag.From.Name)
	}
	if istag.Annotations != nil {
		t.Errorf("clean entry should carry no annotations, got %v", istag.Annotations)
	}

	entry.AddIssues("something drifted")
	istag = BuildISTag("etcd", entry)
	if _, ok := istag.Annotations[InconsistencyAnnotation]; !ok {
		t.Error("entry with issues should carry the inconsistency annotation")
	}
}

func TestBuildImageStream(t *testing.T) {
	var istags []TagReference
	for i := 0; i < 3; i++ {
		key := fmt.Sprintf("component-%d", i)
		entry := NewComponentEntry(testComponent(key, key, false, "x86_64"), testBuild(key), testArchive("x86_64", "1"), fmt.Sprintf("quay.io/org/repo:sha256-%d", i))
		istags = append(istags, BuildISTag(key, entry))
	}

	istream := BuildImageStream("4.9-art-latest-s390x", "ocp-s390x", istags, nil)
	if istream.Kind != "ImageStream" || istream.APIVersion != "image.openshift.io/v1" {
		t.Errorf("unexpected type meta: %s %s", istream.Kind, istream.APIVersion)
	}
	if istream.Metadata.Name != "4.9-art-latest-s390x" || istream.Metadata.Namespace != "ocp-s390x" {
		t.Errorf("unexpected object meta: %s/%s", istream.Metadata.Namespace, istream.Metadata.Name)
	}
	if istream.Metadata.Annotations != nil {
		t.Errorf("no assembly issues should mean no annotations, got %v", istream.Metadata.Annotations)
	}
	if len(istream.Spec.Tags) != 3 {
		t.Errorf("expected 3 tags, got %d", len(istream.Spec.Tags))
	}

	annotated := BuildImageStream("name", "ns", istags, []string{"assembly issue"})
	if _, ok := annotated.Metadata.Annotations[InconsistencyAnnotation]; !ok {
		t.Error("assembly issues should be annotated on the imagestream")
	}
}

func TestImageStreamSerialization(t *testing.T) {
	istream := BuildImageStream("4.9-art-latest", "ocp", nil, nil)
	data, err := yaml.Marshal(istream)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The manifest carries only name/namespace/annotations metadata; a
	// full ObjectMeta would leak creationTimestamp: null into the output.
	if strings.Contains(string(data), "creationTimestamp") {
		t.Errorf("manifest should not carry creationTimestamp:\n%s", data)
	}
	if !strings.Contains(string(data), "name: 4.9-art-latest") || !strings.Contains(string(data), "namespace: ocp") {
		t.Errorf("manifest missing metadata:\n%s", data)
	}
}
