package catalogfile

import "errors"

// ErrLoadCatalog wraps every read, parse and validation failure.
var ErrLoadCatalog = errors.New("load catalog failed")
