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
	"log"
	"sort"

	"github.com/distribution/reference"
	"github.com/pkg/errors"

	"github.com/openshift-eng/artrel/pkg/assembly"
)

// ReleaseInfo is the published manifest of an existing release payload. Its
// references are an imagestream: one tag per payload component, each
// pointing at a digest-pinned pullspec.
type ReleaseInfo struct {
	References *ImageStream `json:"references"`
}

// ReleaseInfoFetcher retrieves the published manifest for a release
// pullspec. The production implementation asks the release controller
// registry; tests substitute a fake.
type ReleaseInfoFetcher interface {
	Fetch(pullspec string) (*ReleaseInfo, error)
}

// CheckNightliesConsistency verifies that the payload content this engine
// computed is an exact match for every reference nightly the assembly
// declares. Digest drift is returned as issue strings; a nightly that is
// structurally unusable (malformed digest references, tags we never
// computed) is an error, because that indicates a corrupt or garbage
// collected nightly rather than a build discrepancy.
func CheckNightliesConsistency(asm *assembly.Assembly, rhcos RHCOSResolver, fetcher ReleaseInfoFetcher, majorMinor string) ([]string, error) {
	if len(asm.ReferenceNightlies) == 0 {
		return nil, nil
	}

	arches := make([]string, 0, len(asm.ReferenceNightlies))
	for arch := range asm.ReferenceNightlies {
		arches = append(arches, arch)
	}
	sort.Strings(arches)

	var issues []string
	for _, arch := range arches {
		nightly := asm.ReferenceNightlies[arch]
		nightlyIssues, err := checkNightlyConsistency(asm, rhcos, fetcher, nightly, arch, majorMinor)
		if err != nil {
			return nil, err
		}
		issues = append(issues, nightlyIssues...)
	}
	return issues, nil
}

func checkNightlyConsistency(asm *assembly.Assembly, rhcos RHCOSResolver, fetcher ReleaseInfoFetcher, nightly, arch, majorMinor string) ([]string, error) {
	log.Printf("Processing nightly: %s", nightly)

	components, err := IsolateNightlyNameComponents(nightly)
	if err != nil {
		return nil, err
	}
	if components.MajorMinor != majorMinor {
		return []string{fmt.Sprintf("specified nightly %s does not match group major.minor %s", nightly, majorMinor)}, nil
	}

	pullspec := ReleaseControllerPullspec(nightly, components.BrewArch, components.Private)
	info, err := retry(nightlyFetchAttempts, func() (*ReleaseInfo, error) {
		info, err := fetcher.Fetch(pullspec)
		if err != nil {
			log.Printf("WARNING: error accessing nightly release info for %s: %v", pullspec, err)
		}
		return info, err
	})
	if err != nil {
		return []string{fmt.Sprintf("unable to gather nightly release info details: %s; garbage collected?", pullspec)}, nil
	}
	if info.References == nil || len(info.References.Spec.Tags) == 0 {
		return []string{fmt.Sprintf("could not find tags in nightly %s", nightly)}, nil
	}

	// Destination locations are irrelevant when comparing digests, so the
	// entries are computed against an empty destination repository.
	entries, err := FindEntries(asm, rhcos, arch, "")
	if err != nil {
		return nil, err
	}

	var issues []string
	for _, istag := range info.References.Spec.Tags {
		digest, err := digestFromPullspec(istag.From.Name)
		if err != nil {
			return nil, errors.Wrapf(err, "expected pullspec in %s:%s to be pinned to a digest", nightly, istag.Name)
		}

		entry := entries[istag.Name]
		if entry == nil {
			return nil, errors.Errorf("did not find %s payload tag %s in computed assembly payload", nightly, istag.Name)
		}

		switch entry.Kind() {
		case ComponentEntry:
			if computed := entry.Archive().Digest; computed != digest {
				issues = append(issues, fmt.Sprintf("%s contains %s digest %s but assembly computed archive %s with digest %s", nightly, istag.Name, digest, entry.Archive().Pullspec, computed))
			}
		case RHCOSEntry:
			if computed := entry.RHCOS().Digest; computed != digest {
				issues = append(issues, fmt.Sprintf("%s contains %s digest %s but assembly computed RHCOS build %s with digest %s", nightly, istag.Name, digest, entry.RHCOS(), computed))
			}
		}
	}
	return issues, nil
}

// digestFromPullspec extracts the digest a pullspec is pinned to. Pullspecs
// without a digest are rejected.
func digestFromPullspec(pullspec string) (string, error) {
	ref, err := reference.Parse(pullspec)
	if err != nil {
		return "", err
	}
	canonical, ok := ref.(reference.Canonical)
	if !ok {
		return "", fmt.Errorf("pullspec %q carries no digest", pullspec)
	}
	return canonical.Digest().String(), nil
}
