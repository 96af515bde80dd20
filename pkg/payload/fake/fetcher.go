package fake

import (
	"fmt"

	"github.com/openshift-eng/artrel/pkg/payload"
)

// Fetcher is a fake of the payload.ReleaseInfoFetcher interface, serving
// canned release info keyed by pullspec. It can be configured to fail a
// number of times before succeeding, to exercise retry behavior.
type Fetcher struct {
	infos        map[string]*payload.ReleaseInfo
	failuresLeft int

	// Calls counts every Fetch invocation, including failed ones.
	Calls int
}

// New gives a new Fetcher serving the given release infos.
func New(infos map[string]*payload.ReleaseInfo) *Fetcher {
	return &Fetcher{infos: infos}
}

// FailTimes makes the next n Fetch calls return an error.
func (f *Fetcher) FailTimes(n int) *Fetcher {
	f.failuresLeft = n
	return f
}

func (f *Fetcher) Fetch(pullspec string) (*payload.ReleaseInfo, error) {
	f.Calls++
	if f.failuresLeft > 0 {
		f.failuresLeft--
		return nil, fmt.Errorf("transient failure fetching %s", pullspec)
	}
	info, ok := f.infos[pullspec]
	if !ok {
		return nil, fmt.Errorf("no release info for %s", pullspec)
	}
	return info, nil
}
