package services

import "errors"

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrFormat           = errors.New("malformed command arguments")
	ErrNotFound         = errors.New("catalog entry not found")
	ErrDelivery         = errors.New("product delivery failed")
	ErrEnrichment       = errors.New("archived content enrichment failed")
	ErrBroadcast        = errors.New("no operator reachable")
)
