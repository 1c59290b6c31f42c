// Package units holds the static unit registry mapping device codes to
// their stage group and canonical process order. The table is fixed at
// build time; no runtime mutation is supported.
package units

import "github.com/hqsteel/heatline/pkg/domain/entities"

// StageInfo describes a registered processing unit
type StageInfo struct {
	Group          entities.StageGroup
	CanonicalOrder int
}

// Canonical process order: KR desulfurization, BOF converter, ladle
// furnace, continuous caster.
const (
	OrderKR     = 1
	OrderBOF    = 2
	OrderLF     = 3
	OrderCaster = 4
)

var registry = map[string]StageInfo{
	"KR1": {entities.GroupKR, OrderKR},
	"KR2": {entities.GroupKR, OrderKR},

	"BOF1": {entities.GroupBOF, OrderBOF},
	"BOF2": {entities.GroupBOF, OrderBOF},
	"BOF3": {entities.GroupBOF, OrderBOF},

	"LF1": {entities.GroupLF, OrderLF},
	"LF2": {entities.GroupLF, OrderLF},
	"LF3": {entities.GroupLF, OrderLF},

	"TSC1": {entities.GroupCaster, OrderCaster},
	"TSC2": {entities.GroupCaster, OrderCaster},
	"CCM1": {entities.GroupCaster, OrderCaster},
}

// Lookup resolves a device code against the registry.
func Lookup(unit string) (StageInfo, bool) {
	info, ok := registry[unit]
	return info, ok
}

// GroupOf returns the stage group for a device code, or GroupUnknown
// for unregistered codes.
func GroupOf(unit string) entities.StageGroup {
	if info, ok := registry[unit]; ok {
		return info.Group
	}
	return entities.GroupUnknown
}

// All returns a copy of the registry for reporting purposes.
func All() map[string]StageInfo {
	out := make(map[string]StageInfo, len(registry))
	for k, v := range registry {
		out[k] = v
	}
	return out
}
