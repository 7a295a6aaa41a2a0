package block

import (
	"fmt"
	"sort"
	"strings"
)

var (
	registry = make(map[BlockID]BlockBehavior)
	byName   = make(map[string]BlockID)
)

// Register добавляет поведение блока в регистр
func Register(id BlockID, behavior BlockBehavior) {
	registry[id] = behavior
	byName[strings.ToLower(behavior.Name())] = id
}

// Get возвращает поведение для указанного ID
func Get(id BlockID) (BlockBehavior, bool) {
	behavior, exists := registry[id]
	return behavior, exists
}

// IsValidBlockID проверяет, является ли ID допустимым идентификатором блока
func IsValidBlockID(id BlockID) bool {
	_, exists := registry[id]
	return exists
}

// ParseName ищет блок по имени без учёта регистра ("stone", "Diamond")
func ParseName(name string) (BlockID, bool) {
	id, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// All возвращает все зарегистрированные ID по возрастанию
func All() []BlockID {
	ids := make([]BlockID, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// BlockID представляет идентификатор вида блока
type BlockID uint16

// Константы ID блоков. Набор закрытый: генератор и оверлей оперируют только ими.
const (
	AirBlockID     BlockID = iota // 0 — пустота, никогда не попадает в батчи
	GrassBlockID                  // 1
	DirtBlockID                   // 2
	StoneBlockID                  // 3
	SandBlockID                   // 4
	WoodBlockID                   // 5 - ствол дерева
	LeavesBlockID                 // 6
	CoalBlockID                   // 7 - угольная руда
	IronBlockID                   // 8 - железная руда
	DiamondBlockID                // 9 - алмазная руда
	BedrockBlockID                // 10 - дно мира
	SnowBlockID                   // 11
	PlanksBlockID                 // 12 - доски (ставит только игрок)

	blockIDCount // всегда последний
)

// Count возвращает количество видов блоков (включая воздух)
func Count() int {
	return int(blockIDCount)
}

// String возвращает имя блока из регистра
func (id BlockID) String() string {
	if behavior, ok := registry[id]; ok {
		return behavior.Name()
	}
	return fmt.Sprintf("Block(%d)", uint16(id))
}
