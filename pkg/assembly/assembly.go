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

// Package assembly holds the resolved view of one assembly: the group's
// components, the brew build selected for each of them, and the RHCOS builds
// targeted for each architecture. The data here is produced by the build
// inspection tooling upstream of this repository; payload generation only
// reads it.
package assembly

import (
	"fmt"
	"sort"
)

// Type classifies an assembly and determines which payload policies apply
// to it, e.g. whether private imagestream variants are produced and whether
// sibling commit mismatches are tolerated.
type Type string

const (
	// TypeStream is the moving assembly tracking latest builds. Only stream
	// assemblies have the concept of public and private payload variants.
	TypeStream Type = "stream"

	// TypeStandard is a named release assembly (e.g. 4.9.5).
	TypeStandard Type = "standard"

	// TypeCandidate is a release candidate assembly (e.g. rc.4).
	TypeCandidate Type = "candidate"

	// TypeCustom is a one-off assembly for hotfixes and experiments. Most
	// consistency enforcement is relaxed for custom assemblies.
	TypeCustom Type = "custom"

	// TypeTest is the assembly used to exercise the assembly tooling
	// itself. Like custom assemblies, it is exempt from sibling commit
	// enforcement.
	TypeTest Type = "test"
)

// ParseType validates a string from an assembly state file as a Type.
func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case TypeStream, TypeStandard, TypeCandidate, TypeCustom, TypeTest:
		return t, nil
	}
	return "", fmt.Errorf("unknown assembly type %q", s)
}

// Component is one buildable unit in the group, identified by its distgit
// key.
type Component struct {
	// DistgitKey uniquely names the component within the group.
	DistgitKey string `json:"distgitKey"`

	// ForRelease is false for components the group builds but does not ship
	// as part of the release.
	ForRelease bool `json:"forRelease"`

	// ForPayload marks components whose image occupies a tag in the release
	// payload imagestream.
	ForPayload bool `json:"forPayload"`

	// PayloadName is the payload tag this component's image occupies.
	PayloadName string `json:"payloadName"`

	// ExplicitName is true when PayloadName was explicitly declared in the
	// component's metadata rather than derived from the image name. Explicit
	// names take precedence when two components claim the same tag.
	ExplicitName bool `json:"explicitName,omitempty"`

	// Arches lists the brew architectures this component builds for.
	Arches []string `json:"arches"`
}

// HasArch reports whether the component builds for the given brew
// architecture.
func (c *Component) HasArch(brewArch string) bool {
	for _, a := range c.Arches {
		if a == brewArch {
			return true
		}
	}
	return false
}

// Archive is one architecture-specific image inside a multi-arch brew build.
type Archive struct {
	// Arch is the brew architecture of the image.
	Arch string `json:"arch"`

	// Digest is the content digest of the image, e.g. "sha256:abc...".
	Digest string `json:"digest"`

	// Pullspec is where the image can be pulled from build system storage.
	Pullspec string `json:"pullspec"`

	// RPMs is the list of installed RPM NVRs in the image.
	RPMs []string `json:"rpms,omitempty"`
}

// Build is one brew build selected for a component under the current
// assembly.
type Build struct {
	// ID is the brew build id.
	ID string `json:"id"`

	// NVR is the name-version-release of the build.
	NVR string `json:"nvr"`

	// SourceURL is the upstream git repository the build was created from.
	// Empty for distgit-only components.
	SourceURL string `json:"sourceURL,omitempty"`

	// SourceCommit is the upstream git commit the build was created from.
	// Empty for distgit-only components.
	SourceCommit string `json:"sourceCommit,omitempty"`

	// Embargoed builds must not reach the public release controller until
	// their embargo lifts.
	Embargoed bool `json:"embargoed,omitempty"`

	// Archives maps brew architecture to the arch-specific image in the
	// build's manifest list.
	Archives map[string]*Archive `json:"archives"`
}

// Archive returns the arch-specific image for the given brew architecture,
// or nil if the build does not carry one.
func (b *Build) Archive(brewArch string) *Archive {
	return b.Archives[brewArch]
}

// RHCOSBuild is the OS content image for one architecture and privacy mode.
// RHCOS is built independently of the group's components and is never
// subject to payload tag fallback.
type RHCOSBuild struct {
	// ID names the RHCOS build, e.g. "49.84.202110270303-0".
	ID string `json:"id"`

	// Arch is the brew architecture of the build.
	Arch string `json:"arch"`

	// Private is true for builds targeted at the private release controller.
	Private bool `json:"private,omitempty"`

	// Pullspec is the machine-os-content image location.
	Pullspec string `json:"pullspec"`

	// Digest is the content digest of the machine-os-content image.
	Digest string `json:"digest"`

	// RPMs is the list of installed RPM NVRs in the build.
	RPMs []string `json:"rpms,omitempty"`
}

func (b *RHCOSBuild) String() string {
	return fmt.Sprintf("%s (%s)", b.ID, b.Arch)
}

// Assembly is the resolved state of one assembly: which build, if any, the
// assembly selected for every component in the group.
type Assembly struct {
	// Name of the assembly, e.g. "stream" or "4.9.5".
	Name string `json:"name"`

	// Type of the assembly.
	Type Type `json:"type"`

	// Components is every component in the group.
	Components []*Component `json:"components"`

	// Builds maps distgit key to the build selected for the assembly. A key
	// present with a nil value records that no build was found; the payload
	// proceeds with placeholders but the gap is reported.
	Builds map[string]*Build `json:"builds"`

	// ReferenceNightlies maps brew architecture to the name of a previously
	// accepted nightly the assembly claims to reproduce exactly.
	ReferenceNightlies map[string]string `json:"referenceNightlies,omitempty"`
}

// BuildFor returns the build selected for the given component, or nil when
// the assembly found none.
func (a *Assembly) BuildFor(distgitKey string) *Build {
	return a.Builds[distgitKey]
}

// ReleaseComponents returns the group's release components in lexicographic
// distgit key order. Key order, not declaration order, drives payload tag
// mapping so results never depend on state file ordering.
func (a *Assembly) ReleaseComponents() []*Component {
	var out []*Component
	for _, c := range a.Components {
		if c.ForRelease {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DistgitKey < out[j].DistgitKey })
	return out
}

// NonReleaseComponents returns the distgit keys of components excluded from
// the release, sorted.
func (a *Assembly) NonReleaseComponents() []string {
	var out []string
	for _, c := range a.Components {
		if !c.ForRelease {
			out = append(out, c.DistgitKey)
		}
	}
	sort.Strings(out)
	return out
}

// MissingBuilds returns the distgit keys of release components the assembly
// could not find a build for, sorted.
func (a *Assembly) MissingBuilds() []string {
	var out []string
	for _, c := range a.ReleaseComponents() {
		if a.Builds[c.DistgitKey] == nil {
			out = append(out, c.DistgitKey)
		}
	}
	return out
}

// SelectedBuilds returns the non-nil builds selected for release components,
// in component key order.
func (a *Assembly) SelectedBuilds() []*Build {
	var out []*Build
	for _, c := range a.ReleaseComponents() {
		if b := a.Builds[c.DistgitKey]; b != nil {
			out = append(out, b)
		}
	}
	return out
}
