package archetypes

import (
	"github.com/automoto/gifsprite/components"
	cfg "github.com/automoto/gifsprite/config"
	"github.com/automoto/gifsprite/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Editor = newArchetype(
		tags.Editor,
		components.Editor,
		components.Preview,
		components.Status,
		components.HitZone,
	)
	Menu = newArchetype(
		tags.Menu,
		components.Menu,
	)
	Input = newArchetype(
		components.Input,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
