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
	"log"

	"github.com/openshift-eng/artrel/pkg/assembly"
)

// TagArtifact binds the arch-specific image chosen for a payload tag to the
// component and build it came from.
type TagArtifact struct {
	Component *assembly.Component
	Build     *assembly.Build
	Archive   *assembly.Archive
}

// GroupTagMapping computes which image, if any, occupies each payload tag
// for one architecture. A tag mapped to nil is a placeholder: the tag must
// exist on every architecture, but this one has no build of it and the
// entry assembler will substitute the fallback image. machine-os-content is
// not included since it is not a member of the group.
//
// Tag name collisions are resolved by the explicit/implicit flag alone: a
// tag recorded from an explicitly declared payload name is permanent, an
// implicitly derived one yields to a later explicit claim. Between two
// implicit claims the lexicographically smaller distgit key wins; components
// are walked in key order, so the result never depends on input ordering.
func GroupTagMapping(asm *assembly.Assembly, arch string) map[string]*TagArtifact {
	brewArch := BrewArchForGoArch(arch)

	members := map[string]*TagArtifact{}
	explicit := map[string]bool{}

	for _, component := range asm.ReleaseComponents() {
		if !component.ForPayload {
			continue
		}

		build := asm.BuildFor(component.DistgitKey)
		if build == nil {
			// No build for this component found for the assembly. The tag is
			// left out entirely; the gap is surfaced in the report.
			log.Printf("WARNING: unable to find build for %s for assembly %s", component.DistgitKey, asm.Name)
			continue
		}

		tagName := component.PayloadName
		if _, claimed := members[tagName]; claimed {
			if explicit[tagName] || !component.ExplicitName {
				continue
			}
			// Implicit holder, explicit claimant: overwrite below.
		}
		explicit[tagName] = explicit[tagName] || component.ExplicitName

		if !component.HasArch(brewArch) {
			// The component is not meant for this architecture. A
			// placeholder keeps the tag set identical across arches.
			members[tagName] = nil
			continue
		}

		archive := build.Archive(brewArch)
		if archive == nil {
			// The build carries no image for this architecture.
			members[tagName] = nil
			continue
		}

		members[tagName] = &TagArtifact{
			Component: component,
			Build:     build,
			Archive:   archive,
		}
	}

	return members
}
