package clientdist

import _ "embed"

// WeaveJS is the browser client that applies live patches.
//
// It is served at "/weave.js".
//
//go:embed weave.js
var WeaveJS []byte
