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
	"strings"

	"github.com/pkg/errors"

	"github.com/openshift-eng/artrel/pkg/assembly"
)

// RHCOSResolver supplies the RHCOS build targeted for an architecture and
// privacy mode. Implemented by assembly state loaded from the inspection
// tooling; faked in tests.
type RHCOSResolver interface {
	RHCOSFor(brewArch string, private bool) (*assembly.RHCOSBuild, error)
}

// MirroringDestination returns the external image location to which an
// archive should be mirrored in order to be included in a release payload.
// The tag is the content digest with the algorithm separator replaced, so
// repeated syncs are idempotent and the location leaks no component
// identity to users watching the repository. The image must carry a tag or
// it will be garbage collected.
func MirroringDestination(archive *assembly.Archive, destRepo string) string {
	// sha256:abcdef -> sha256-abcdef
	tag := strings.Replace(archive.Digest, ":", "-", 1)
	return destRepo + ":" + tag
}

// FindEntries produces the complete payload entry set for one architecture:
// one entry per payload tag, plus machine-os-content. Tags the architecture
// has no image for are filled with the fallback image so that every
// architecture's payload carries an identical tag set, which 'oc adm
// release new' requires.
//
// The assembly's canonical payload content is the same whether the payload
// is published publicly or privately, so entries are computed once per
// architecture with the public RHCOS build.
func FindEntries(asm *assembly.Assembly, rhcos RHCOSResolver, arch, destRepo string) (map[string]*Entry, error) {
	brewArch := BrewArchForGoArch(arch)

	entries := map[string]*Entry{}
	for tagName, artifact := range GroupTagMapping(asm, brewArch) {
		if artifact == nil {
			entries[tagName] = nil
			continue
		}
		entries[tagName] = NewComponentEntry(
			artifact.Component,
			artifact.Build,
			artifact.Archive,
			MirroringDestination(artifact.Archive, destRepo),
		)
	}

	fallback := entries[FallbackTag]
	if fallback == nil {
		return nil, errors.Errorf("unable to find %s image archive for architecture %s; unable to construct payload", FallbackTag, brewArch)
	}
	for tagName, entry := range entries {
		if entry == nil {
			entries[tagName] = fallback.fallbackCopy()
		}
	}

	rhcosBuild, err := rhcos.RHCOSFor(brewArch, false)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving RHCOS build for architecture %s", brewArch)
	}
	entries[RHCOSTag] = NewRHCOSEntry(rhcosBuild)

	return entries, nil
}
