package implementations

import "github.com/annel0/blockverse/internal/world/block"

// Регистрируем все типы блоков при импорте пакета
func init() {
	// Базовые блоки
	block.Register(block.AirBlockID, &AirBehavior{})
	block.Register(block.StoneBlockID, &StoneBehavior{})
	block.Register(block.BedrockBlockID, &BedrockBehavior{})

	// Поверхность
	block.Register(block.GrassBlockID, NewGrass())
	block.Register(block.DirtBlockID, NewDirt())
	block.Register(block.SandBlockID, NewSand())
	block.Register(block.SnowBlockID, NewSnow())

	// Руды: чем глубже и реже, тем дольше добыча
	block.Register(block.CoalBlockID, &OreBehavior{id: block.CoalBlockID, name: "Coal", miningTime: 0.4})
	block.Register(block.IronBlockID, &OreBehavior{id: block.IronBlockID, name: "Iron", miningTime: 0.6})
	block.Register(block.DiamondBlockID, &OreBehavior{id: block.DiamondBlockID, name: "Diamond", miningTime: 0.8})

	// Деревья и постройки
	block.Register(block.WoodBlockID, &WoodBehavior{})
	block.Register(block.LeavesBlockID, &LeavesBehavior{})
	block.Register(block.PlanksBlockID, &PlanksBehavior{})
}
