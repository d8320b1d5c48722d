package entity

import "strings"

// Player is an immutable participant: a display name and the marker it places.
type Player struct {
	name   string
	marker string
}

func NewPlayer(name, marker string) Player {
	return Player{
		name:   name,
		marker: strings.ToUpper(marker),
	}
}

func (that Player) Name() string {
	return that.name
}

func (that Player) Marker() string {
	return that.marker
}
