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
	"fmt"
	"strings"

	"github.com/openshift-eng/artrel/pkg/assembly"
)

// Test fixture builders. Digests need to be syntactically valid so that
// they survive pullspec parsing in the nightly checker.

func testDigest(seed string) string {
	return "sha256:" + strings.Repeat(seed, 64/len(seed))
}

func testComponent(key, tagName string, explicit bool, arches ...string) *assembly.Component {
	return &assembly.Component{
		DistgitKey:   key,
		ForRelease:   true,
		ForPayload:   true,
		PayloadName:  tagName,
		ExplicitName: explicit,
		Arches:       arches,
	}
}

func testArchive(arch, digestSeed string, rpms ...string) *assembly.Archive {
	return &assembly.Archive{
		Arch:     arch,
		Digest:   testDigest(digestSeed),
		Pullspec: fmt.Sprintf("registry-proxy.example.com/rh-osbs/img-%s@%s", arch, testDigest(digestSeed)),
		RPMs:     rpms,
	}
}

func testBuild(id string, archives ...*assembly.Archive) *assembly.Build {
	byArch := map[string]*assembly.Archive{}
	for _, a := range archives {
		byArch[a.Arch] = a
	}
	return &assembly.Build{
		ID:           id,
		NVR:          id + "-container-1-1",
		SourceURL:    "https://github.com/openshift/" + id,
		SourceCommit: "commit-" + id,
		Archives:     byArch,
	}
}

func testRHCOS(arch string, private bool, digestSeed string, rpms ...string) *assembly.RHCOSBuild {
	return &assembly.RHCOSBuild{
		ID:       "49.84.202110270303-0",
		Arch:     arch,
		Private:  private,
		Pullspec: "quay.io/openshift-release-dev/ocp-v4.0-art-dev:rhcos-" + arch,
		Digest:   testDigest(digestSeed),
		RPMs:     rpms,
	}
}

// testState wires components and builds into a loadable state with RHCOS
// builds for every requested architecture.
func testState(asmType assembly.Type, name string, components []*assembly.Component, builds map[string]*assembly.Build, arches ...string) *assembly.State {
	var rhcos []*assembly.RHCOSBuild
	for _, arch := range arches {
		rhcos = append(rhcos, testRHCOS(arch, false, "b"))
		rhcos = append(rhcos, testRHCOS(arch, true, "b"))
	}
	return &assembly.State{
		MajorMinor: "4.9",
		Arches:     arches,
		Assembly: &assembly.Assembly{
			Name:       name,
			Type:       asmType,
			Components: components,
			Builds:     builds,
		},
		RHCOSBuilds: rhcos,
	}
}
