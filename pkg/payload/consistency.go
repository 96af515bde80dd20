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
	"sort"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/openshift-eng/artrel/pkg/assembly"
)

// FindMismatchedSiblings detects sibling images built from different
// commits. Siblings are builds sourced from the same upstream repository;
// within one assembly they must all build from the same commit. Every build
// sharing a conflicted repository is returned, not just the outliers.
// Builds without source information (distgit-only components) are exempt.
func FindMismatchedSiblings(builds []*assembly.Build) []*assembly.Build {
	byRepo := map[string][]*assembly.Build{}
	commits := map[string]sets.String{}

	for _, build := range builds {
		if build == nil {
			continue
		}
		if build.SourceURL == "" || build.SourceCommit == "" {
			continue
		}
		byRepo[build.SourceURL] = append(byRepo[build.SourceURL], build)
		if commits[build.SourceURL] == nil {
			commits[build.SourceURL] = sets.NewString()
		}
		commits[build.SourceURL].Insert(build.SourceCommit)
	}

	var mismatched []*assembly.Build
	for repo, repoCommits := range commits {
		if repoCommits.Len() < 2 {
			continue
		}
		mismatched = append(mismatched, byRepo[repo]...)
	}
	sort.Slice(mismatched, func(i, j int) bool { return mismatched[i].NVR < mismatched[j].NVR })
	return mismatched
}

// FindStaleRPMs compares installed RPM NVRs against the newest NVRs known
// for the same packages in the group's candidate build targets. A non-empty
// result means the build predates current RPM content and the assembly scan
// step needs to be re-run. Packages absent from latest are not flagged; we
// never gripe about what we don't directly ship.
func FindStaleRPMs(installed []string, latest map[string]string) ([]string, error) {
	var issues []string
	for _, nvr := range installed {
		name, err := assembly.RPMName(nvr)
		if err != nil {
			return nil, err
		}
		latestNVR, shipped := latest[name]
		if !shipped || latestNVR == nvr {
			continue
		}
		issues = append(issues, fmt.Sprintf("installed %s but candidate tag has %s", nvr, latestNVR))
	}
	sort.Strings(issues)
	return issues, nil
}

// FindRHCOSRPMInconsistencies looks across a set of RHCOS builds that are
// supposed to represent the same release and reports any RPM package
// installed at more than one version among them. The result maps package
// name to every conflicting NVR; it is empty when the builds agree.
func FindRHCOSRPMInconsistencies(builds []*assembly.RHCOSBuild) (map[string][]string, error) {
	rpmUses := map[string]sets.String{}

	for _, build := range builds {
		for _, nvr := range build.RPMs {
			name, err := assembly.RPMName(nvr)
			if err != nil {
				return nil, fmt.Errorf("RHCOS build %s: %w", build, err)
			}
			if rpmUses[name] == nil {
				rpmUses[name] = sets.NewString()
			}
			rpmUses[name].Insert(nvr)
		}
	}

	inconsistencies := map[string][]string{}
	for name, nvrs := range rpmUses {
		if nvrs.Len() > 1 {
			inconsistencies[name] = nvrs.List()
		}
	}
	return inconsistencies, nil
}
