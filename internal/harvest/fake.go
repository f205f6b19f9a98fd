package harvest

import (
	"context"
	"encoding/xml"
	"fmt"
	"sync"

	"fairmeter/internal/terms"
	"fairmeter/pkg/platform/sentinel"
)

// FakeSource is an in-memory Source for tests and local runs. Records are
// keyed by candidate identifier form. Safe for concurrent readers, as batch
// assessments share one source.
type FakeSource struct {
	FormatMap map[string]string
	Records   map[string]*terms.Node
	Err       error

	mu sync.Mutex
	// Requested collects every candidate form asked for, in order.
	Requested []string
}

// NewFakeSource returns a fake advertising the oai_dc format and no records.
func NewFakeSource() *FakeSource {
	return &FakeSource{
		FormatMap: map[string]string{"oai_dc": DublinCoreNamespace},
		Records:   make(map[string]*terms.Node),
	}
}

// AddRecordXML parses doc as a metadata container and registers it under the
// given candidate identifier form.
func (f *FakeSource) AddRecordXML(candidate, doc string) error {
	var n terms.Node
	if err := xml.Unmarshal([]byte(doc), &n); err != nil {
		return fmt.Errorf("parse fake record: %w", err)
	}
	f.Records[candidate] = &n
	return nil
}

// Formats implements Source.
func (f *FakeSource) Formats(ctx context.Context) (map[string]string, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.FormatMap, nil
}

// Record implements Source.
func (f *FakeSource) Record(ctx context.Context, prefix string, candidates []string) (*terms.Node, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	for _, c := range candidates {
		f.mu.Lock()
		f.Requested = append(f.Requested, c)
		f.mu.Unlock()
		if n, ok := f.Records[c]; ok {
			return n, nil
		}
	}
	return nil, fmt.Errorf("fake source has no record for %v: %w", candidates, sentinel.ErrNotFound)
}
