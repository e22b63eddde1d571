package farebox

import "github.com/xraph/farebox/id"

// ID is the identifier type for Farebox settlement artifacts.
type ID = id.ID

// Prefix identifies the artifact type encoded in a TypeID.
type Prefix = id.Prefix
