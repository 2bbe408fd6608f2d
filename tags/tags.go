package tags

import "github.com/yohamta/donburi"

var (
	LocalClient = donburi.NewTag().SetName("LocalClient")
)
