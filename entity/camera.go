package entity

import "github.com/samber/lo"

type Status string

const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
)

type Camera struct {
	Name   string `json:"name" yaml:"name"`
	Z      int    `json:"z" yaml:"z"`
	X      int    `json:"x" yaml:"x"`
	Y      int    `json:"y" yaml:"y"`
	Status Status `json:"status" yaml:"status"`
	Ref    string `json:"ref" yaml:"ref"` // opaque host identity
}

func (c Camera) IsOnline() bool {
	return c.Status != StatusOffline
}

// Snapshot is one host data update. ActiveCamera is nil when nothing is being viewed.
type Snapshot struct {
	Cameras      []Camera `json:"cameras"`
	ActiveCamera *Camera  `json:"activeCamera"`
	MapRef       string   `json:"mapRef"`
}

// ActiveName returns the active camera's name, or "" when none is active.
func (s Snapshot) ActiveName() string {
	if s.ActiveCamera == nil {
		return ""
	}
	return s.ActiveCamera.Name
}

func (s Snapshot) IsActive(c Camera) bool {
	return s.ActiveCamera != nil && s.ActiveCamera.Name == c.Name
}

// Clone copies the camera slice and the active camera so the result shares nothing with s.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Cameras: lo.Map(s.Cameras, func(c Camera, _ int) Camera { return c }),
		MapRef:  s.MapRef,
	}
	if s.ActiveCamera != nil {
		active := *s.ActiveCamera
		out.ActiveCamera = &active
	}
	return out
}
