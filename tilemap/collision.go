package tilemap

// CollisionType classifies how the player interacts with a tile. The raw
// collision byte is preserved even for values outside the known set.
type CollisionType uint8

const (
	CollisionNone CollisionType = iota
	CollisionSolid
	CollisionWater
	CollisionDeepWater
	CollisionGrass
	CollisionLedge
	CollisionStairs
	CollisionDoor
	CollisionDamage
	CollisionPit
	CollisionIce
	CollisionWarp
)

func (c CollisionType) String() string {
	switch c {
	case CollisionNone:
		return "none"
	case CollisionSolid:
		return "solid"
	case CollisionWater:
		return "water"
	case CollisionDeepWater:
		return "deep water"
	case CollisionGrass:
		return "grass"
	case CollisionLedge:
		return "ledge"
	case CollisionStairs:
		return "stairs"
	case CollisionDoor:
		return "door"
	case CollisionDamage:
		return "damage"
	case CollisionPit:
		return "pit"
	case CollisionIce:
		return "ice"
	case CollisionWarp:
		return "warp"
	}
	return "unknown"
}
