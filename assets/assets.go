package assets

import (
	_ "embed"
)

//go:embed theme.tengo
var Theme []byte
