package scene

import (
	"encoding/json"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/zeusync/arena/internal/core/arena/model"
)

// Fingerprint hashes the inputs of a pass. Passes with equal fingerprints draw
// the same primitives, which lets a host skip redundant redraws.
func Fingerprint(snap *model.GameSnapshot, cfg model.ViewConfig, player model.PlayerIndex) (uint64, error) {
	d := xxhash.New()
	enc := json.NewEncoder(d)
	if err := enc.Encode(snap); err != nil {
		return 0, err
	}
	if err := enc.Encode(cfg); err != nil {
		return 0, err
	}
	_, _ = d.WriteString(strconv.Itoa(int(player)))
	return d.Sum64(), nil
}
