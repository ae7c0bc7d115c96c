package ecs

import (
	"github.com/phanxgames/choreo"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// AnimatedData attaches a tween or animation to an entity.
type AnimatedData struct {
	Item choreo.Child
}

// Animated is the component ticked by Tick.
var Animated = donburi.NewComponentType[AnimatedData]()

var animatedQuery = donburi.NewQuery(filter.Contains(Animated))

type owned interface {
	Scheduler() *choreo.Scheduler
	Parent() *choreo.Animation
}

// Tick advances every entity's item by one frame. Items that belong to a
// scheduler or an animation are skipped; their owner ticks them.
func Tick(world donburi.World, f choreo.Frame) {
	animatedQuery.Each(world, func(entry *donburi.Entry) {
		item := Animated.Get(entry).Item
		if item == nil {
			return
		}
		if o, ok := item.(owned); ok && (o.Scheduler() != nil || o.Parent() != nil) {
			return
		}
		item.Tick(f)
	})
}

// Attach creates an entity carrying item.
func Attach(world donburi.World, item choreo.Child) donburi.Entity {
	e := world.Create(Animated)
	Animated.SetValue(world.Entry(e), AnimatedData{Item: item})
	return e
}
