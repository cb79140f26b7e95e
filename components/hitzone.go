package components

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// HitZoneData holds the pointer collision space. The preview area is a
// static object and the pointer is a 1x1 probe moved every frame.
type HitZoneData struct {
	Space   *resolv.Space
	Preview *resolv.Object
	Pointer *resolv.Object
}

var HitZone = donburi.NewComponentType[HitZoneData]()
