package coin

import (
	amino "github.com/tendermint/go-amino"
)

// cdc serializes the package types for persistence. Amino produces a
// deterministic binary encoding, which the merkle store requires.
var cdc = amino.NewCodec()
