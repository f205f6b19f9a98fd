// Package harvest implements the metadata-source collaborator: the minimal
// OAI-PMH operations needed to obtain one record for one identifier.
package harvest

import (
	"context"

	"fairmeter/internal/terms"
)

const (
	// OAINamespace is the OAI-PMH envelope namespace; error elements live here.
	OAINamespace = "http://www.openarchives.org/OAI/2.0/"
	// DublinCoreNamespace identifies the oai_dc metadata format.
	DublinCoreNamespace = "http://www.openarchives.org/OAI/2.0/oai_dc/"
)

// Source is the metadata-source abstraction. Implementations own transport
// details; the engine depends only on these two operations. Tests substitute
// a fake source.
type Source interface {
	// Formats lists the source's metadata formats as prefix -> namespace URI.
	Formats(ctx context.Context) (map[string]string, error)
	// Record fetches one record's metadata container using the given format
	// prefix, trying each candidate identifier form in order and accepting
	// the first response without a protocol error element. Returns
	// sentinel.ErrNotFound (wrapped) when every candidate fails.
	Record(ctx context.Context, prefix string, candidates []string) (*terms.Node, error)
}

// DublinCorePrefix selects the format prefix whose namespace is oai_dc.
// Returns "" when the source offers none.
func DublinCorePrefix(formats map[string]string) string {
	for prefix, ns := range formats {
		if ns == DublinCoreNamespace {
			return prefix
		}
	}
	return ""
}
