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
	"github.com/openshift-eng/artrel/pkg/assembly"
)

// EntryKind discriminates the two shapes a payload entry can take.
type EntryKind int

const (
	// ComponentEntry is an entry backed by a component image build.
	ComponentEntry EntryKind = iota

	// RHCOSEntry is the machine-os-content entry, backed by an RHCOS build.
	RHCOSEntry
)

// Entry is the unit the payload engine produces: one per payload tag per
// architecture. An entry is backed by exactly one of a component build
// archive or an RHCOS build; the constructors below are the only way to
// create one, so the invariant holds structurally.
type Entry struct {
	dest   string
	issues []string

	component *assembly.Component
	build     *assembly.Build
	archive   *assembly.Archive

	rhcos *assembly.RHCOSBuild
}

// NewComponentEntry creates an entry backed by the given component's build
// archive, destined for dest.
func NewComponentEntry(component *assembly.Component, build *assembly.Build, archive *assembly.Archive, dest string) *Entry {
	return &Entry{
		dest:      dest,
		component: component,
		build:     build,
		archive:   archive,
	}
}

// NewRHCOSEntry creates the machine-os-content entry for an RHCOS build.
// RHCOS images are mirrored by a separate process, so the destination is the
// build's own pullspec.
func NewRHCOSEntry(build *assembly.RHCOSBuild) *Entry {
	return &Entry{
		dest:  build.Pullspec,
		rhcos: build,
	}
}

// Kind reports which variant the entry is.
func (e *Entry) Kind() EntryKind {
	if e.rhcos != nil {
		return RHCOSEntry
	}
	return ComponentEntry
}

// DestPullspec is the location the entry's image will occupy in the payload.
func (e *Entry) DestPullspec() string {
	return e.dest
}

// Issues returns the inconsistency strings accumulated against the entry.
func (e *Entry) Issues() []string {
	return e.issues
}

// AddIssues records inconsistency strings against the entry.
func (e *Entry) AddIssues(issues ...string) {
	e.issues = append(e.issues, issues...)
}

// Component returns the backing component for ComponentEntry, nil otherwise.
func (e *Entry) Component() *assembly.Component {
	return e.component
}

// Build returns the backing build for ComponentEntry, nil otherwise.
func (e *Entry) Build() *assembly.Build {
	return e.build
}

// Archive returns the backing archive for ComponentEntry, nil otherwise.
func (e *Entry) Archive() *assembly.Archive {
	return e.archive
}

// RHCOS returns the backing RHCOS build for RHCOSEntry, nil otherwise.
func (e *Entry) RHCOS() *assembly.RHCOSBuild {
	return e.rhcos
}

// fallbackCopy clones the entry for use under another tag. The destination
// and backing artifact are shared; the issue list is fresh so annotations
// recorded against one tag do not leak into another.
func (e *Entry) fallbackCopy() *Entry {
	return &Entry{
		dest:      e.dest,
		component: e.component,
		build:     e.build,
		archive:   e.archive,
		rhcos:     e.rhcos,
	}
}
