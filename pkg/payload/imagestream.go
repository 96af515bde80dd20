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
	"sort"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ImageStream is the subset of the image.openshift.io/v1 ImageStream type
// this tool emits. Applying the serialized form to a cluster is what causes
// the release controller to assemble a new payload.
type ImageStream struct {
	metav1.TypeMeta `json:",inline"`

	Metadata ObjectMetadata  `json:"metadata"`
	Spec     ImageStreamSpec `json:"spec"`
}

// ObjectMetadata is the narrow slice of kubernetes object metadata emitted
// manifests carry. A full ObjectMeta would serialize a null
// creationTimestamp into every manifest.
type ObjectMetadata struct {
	Name        string            `json:"name"`
	Namespace   string            `json:"namespace"`
	Annotations map[string]string `json:"annotations,omitempty"`
}

// ImageStreamSpec holds the payload tags.
type ImageStreamSpec struct {
	Tags []TagReference `json:"tags"`
}

// TagReference is a single payload tag pointing at a mirrored image.
type TagReference struct {
	Name        string            `json:"name"`
	Annotations map[string]string `json:"annotations,omitempty"`
	From        ObjectReference   `json:"from"`
}

// ObjectReference names the image a tag tracks.
type ObjectReference struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

// BuildISTag serializes a payload entry into an imagestream tag, carrying
// any inconsistencies found for the entry as an annotation.
func BuildISTag(tagName string, entry *Entry) TagReference {
	return TagReference{
		Name:        tagName,
		Annotations: inconsistencyAnnotation(entry.Issues()),
		From: ObjectReference{
			Kind: "DockerImage",
			Name: entry.DestPullspec(),
		},
	}
}

// BuildImageStream builds the imagestream descriptor for one architecture
// and privacy mode from its payload istags. Assembly-wide issues are
// annotated at the imagestream level.
func BuildImageStream(name, namespace string, istags []TagReference, assemblyIssues []string) *ImageStream {
	return &ImageStream{
		TypeMeta: metav1.TypeMeta{
			Kind:       "ImageStream",
			APIVersion: "image.openshift.io/v1",
		},
		Metadata: ObjectMetadata{
			Name:        name,
			Namespace:   namespace,
			Annotations: inconsistencyAnnotation(assemblyIssues),
		},
		Spec: ImageStreamSpec{
			Tags: istags,
		},
	}
}

// inconsistencyAnnotation serializes issue strings into the inconsistency
// annotation. Issues are sorted and capped at maxAnnotatedIssues with a
// truncation marker; the exhaustive list lives in the report. No issues
// means no annotation at all.
func inconsistencyAnnotation(issues []string) map[string]string {
	if len(issues) == 0 {
		return nil
	}

	sorted := append([]string(nil), issues...)
	sort.Strings(sorted)
	if len(sorted) > maxAnnotatedIssues {
		sorted = append(sorted[:maxAnnotatedIssues], truncationMarker)
	}

	// Marshaling a []string cannot fail.
	encoded, _ := json.Marshal(sorted)
	return map[string]string{InconsistencyAnnotation: string(encoded)}
}
