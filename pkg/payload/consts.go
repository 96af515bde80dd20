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

const (
	// DefaultOrganization is the default quay organization to mirror
	// payload content into. This is re-used throughout the cmd/ package and
	// used as the default value for flags.
	DefaultOrganization = "openshift-release-dev"

	// DefaultRepository is the default quay repository in
	// DefaultOrganization to mirror payload content into.
	DefaultRepository = "ocp-v4.0-art-dev"

	// DefaultImageStreamNamespace is the default base namespace for release
	// payload imagestreams.
	DefaultImageStreamNamespace = "ocp"

	// FallbackTag is the payload tag whose image stands in for tags an
	// architecture does not build. It must resolve to a real artifact on
	// every architecture or no payload can be constructed for it.
	FallbackTag = "pod"

	// RHCOSTag is the payload tag carrying the OS content image.
	RHCOSTag = "machine-os-content"

	// InconsistencyAnnotation is the istag/imagestream annotation under
	// which detected inconsistencies are published. The release controller
	// propagates it into its display of the release image.
	InconsistencyAnnotation = "release.openshift.io/inconsistency"

	// maxAnnotatedIssues caps how many issue strings are serialized into a
	// single inconsistency annotation; the exhaustive list belongs in the
	// report, not in publicly visible istag metadata.
	maxAnnotatedIssues = 5

	// truncationMarker replaces issue strings elided from an annotation.
	truncationMarker = "(...and more)"

	// nightlyFetchAttempts bounds how many times a nightly's release info
	// is requested before the nightly is considered unreachable.
	nightlyFetchAttempts = 3
)
