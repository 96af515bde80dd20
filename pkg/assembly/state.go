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

package assembly

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// State is the full resolved input to payload generation, as written by the
// brew and RHCOS inspection tooling. It is the contract between build
// inspection and this repository.
type State struct {
	// MajorMinor is the group version, e.g. "4.9".
	MajorMinor string `json:"majorMinor"`

	// Arches is every brew architecture the group builds for.
	Arches []string `json:"arches"`

	// Assembly is the resolved assembly.
	Assembly *Assembly `json:"assembly"`

	// RHCOSBuilds holds the RHCOS build targeted for each architecture and
	// privacy mode.
	RHCOSBuilds []*RHCOSBuild `json:"rhcosBuilds"`

	// LatestRPMs maps RPM package name to the newest NVR available in the
	// group's candidate build targets. Used to flag builds that installed
	// outdated RPMs.
	LatestRPMs map[string]string `json:"latestRPMs,omitempty"`
}

// LoadState decodes an assembly state file and validates its structure.
func LoadState(filename string) (*State, error) {
	f, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	s := State{}
	if err := yaml.UnmarshalStrict(f, &s); err != nil {
		return nil, fmt.Errorf("decoding assembly state %q: %w", filename, err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("invalid assembly state %q: %w", filename, err)
	}

	return &s, nil
}

func (s *State) validate() error {
	if s.MajorMinor == "" {
		return fmt.Errorf("majorMinor must be set")
	}
	if len(s.Arches) == 0 {
		return fmt.Errorf("at least one architecture must be set")
	}
	if s.Assembly == nil {
		return fmt.Errorf("assembly must be set")
	}
	if _, err := ParseType(string(s.Assembly.Type)); err != nil {
		return err
	}
	seen := map[string]bool{}
	for _, c := range s.Assembly.Components {
		if c.DistgitKey == "" {
			return fmt.Errorf("component with empty distgit key")
		}
		if seen[c.DistgitKey] {
			return fmt.Errorf("duplicate component %q", c.DistgitKey)
		}
		seen[c.DistgitKey] = true
		if c.ForPayload && c.PayloadName == "" {
			return fmt.Errorf("payload component %q has no payload tag name", c.DistgitKey)
		}
	}
	for key := range s.Assembly.Builds {
		if !seen[key] {
			return fmt.Errorf("build recorded for unknown component %q", key)
		}
	}
	return nil
}

// RHCOSFor returns the RHCOS build for the given brew architecture and
// privacy mode. Payload construction cannot proceed for an architecture
// without one.
func (s *State) RHCOSFor(brewArch string, private bool) (*RHCOSBuild, error) {
	for _, b := range s.RHCOSBuilds {
		if b.Arch == brewArch && b.Private == private {
			return b, nil
		}
	}
	return nil, fmt.Errorf("no RHCOS build for architecture %s (private=%t)", brewArch, private)
}
