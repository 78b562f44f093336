package models

import "time"

// DensityBlock summarises how many, and which, users cover an interval.
type DensityBlock struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Count    int       `json:"count"`
	OwnerIDs []string  `json:"ownerIds"`
}

// OverlapSegment is one piece of an OverlapPartition. Busy* fields are set for
// busy-only and overlapping segments, Preferred* fields for preferred-only and
// overlapping segments.
type OverlapSegment struct {
	Start             time.Time `json:"start"`
	End               time.Time `json:"end"`
	BusyCount         int       `json:"busyCount"`
	BusyOwnerIDs      []string  `json:"busyOwnerIds,omitempty"`
	PreferredCount    int       `json:"preferredCount"`
	PreferredOwnerIDs []string  `json:"preferredOwnerIds,omitempty"`
}

// OverlapPartition splits busy and preferred coverage into three disjoint lists.
type OverlapPartition struct {
	Overlapping   []OverlapSegment `json:"overlapping"`
	BusyOnly      []OverlapSegment `json:"busyOnly"`
	PreferredOnly []OverlapSegment `json:"preferredOnly"`
}
