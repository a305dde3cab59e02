package behavior

// Action enumerates the closed catalogue of creature behaviors.
type Action uint8

const (
	ActionIdle Action = iota
	ActionWander
	ActionSeekFood
	ActionHunt
	ActionEat
	ActionSeekWater
	ActionDrink
	ActionFlee
	ActionSleep
	ActionSocialize
	ActionDefend
	ActionPatrol

	ActionCount // sentinel
)

var actionNames = [ActionCount]string{
	"Idle", "Wander", "SeekFood", "Hunt", "Eat", "SeekWater",
	"Drink", "Flee", "Sleep", "Socialize", "Defend", "Patrol",
}

// String returns the action's display name.
func (a Action) String() string {
	if a >= ActionCount {
		return "Unknown"
	}
	return actionNames[a]
}
