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

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/openshift-eng/artrel/pkg/assembly"
)

// BuildCache holds per-build consistency findings, computed once before the
// architecture loop. The same build backs entries on several architectures;
// caching keeps the loop from recomputing findings and keeps them identical
// everywhere the build appears. The cache is read-only after population.
type BuildCache struct {
	issues map[string][]string
}

// PopulateBuildCache runs the per-build checks for every selected build.
// For stream assemblies, builds carrying RPMs older than the candidate tag
// content are flagged; other assembly types deliberately pin older builds.
func PopulateBuildCache(asm *assembly.Assembly, latestRPMs map[string]string) (*BuildCache, error) {
	cache := &BuildCache{issues: map[string][]string{}}

	if asm.Type != assembly.TypeStream {
		return cache, nil
	}

	for _, component := range asm.ReleaseComponents() {
		build := asm.BuildFor(component.DistgitKey)
		if build == nil {
			continue
		}
		found := sets.NewString()
		for _, archive := range build.Archives {
			stale, err := FindStaleRPMs(archive.RPMs, latestRPMs)
			if err != nil {
				return nil, fmt.Errorf("checking RPMs in %s: %w", build.NVR, err)
			}
			for _, issue := range stale {
				found.Insert(fmt.Sprintf("outdated RPM in %s: %s", build.NVR, issue))
			}
		}
		if found.Len() > 0 {
			cache.issues[build.ID] = found.List()
		}
	}
	return cache, nil
}

// Issues returns the cached findings for a build id.
func (c *BuildCache) Issues(buildID string) []string {
	return c.issues[buildID]
}

// HasIssues reports whether any build was flagged during population.
func (c *BuildCache) HasIssues() bool {
	return len(c.issues) > 0
}
