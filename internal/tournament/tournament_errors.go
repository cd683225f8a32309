package tournament

import "errors"

// Sentinel errors returned out of transactional uniqueness checks so the
// controller can map them to the 400 taxonomy.
var (
	errDuplicateSlug = errors.New("tournament slug already exists in organization")
	errDuplicateKey  = errors.New("category key already exists in tournament")
)
