package steam

import "errors"

var ErrNotInstalled = errors.New("steam installation not found")
