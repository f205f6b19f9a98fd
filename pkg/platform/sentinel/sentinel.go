package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and protocol clients return
// these (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in store, or the source knows no such record
// - ErrProtocol: the metadata source answered with a protocol-level error element
// - ErrUnavailable: endpoint or resource temporarily unreachable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrProtocol    = errors.New("protocol error")
	ErrUnavailable = errors.New("unavailable")
)
