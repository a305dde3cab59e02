package behavior

// NeedID identifies one of the canonical needs. Needs are a closed
// enumeration so the hot path never compares strings.
type NeedID uint8

const (
	NeedHunger NeedID = iota
	NeedThirst
	NeedEnergy
	NeedSafety

	needCount
)

var needNames = [needCount]string{"Hunger", "Thirst", "Energy", "Safety"}

// String returns the need's display name.
func (id NeedID) String() string {
	if id >= needCount {
		return "Unknown"
	}
	return needNames[id]
}

// Need is a scalar drive in [0,1] with a per-second decay rate and a
// response curve mapping deficit to urgency.
type Need struct {
	Value float32
	Decay float32 // per second; zero for externally written needs
	Curve Curve
}

// Controller holds a creature's needs and the scalar attributes consulted
// during action arbitration. One controller is kept per creature, parallel
// to its entity.
type Controller struct {
	needs      [needCount]Need
	IsPredator bool
	Aggression float32 // 0..1

	CurrentAction Action
}

// NewController returns a controller with the four canonical needs
// installed. Safety has no decay; it is written by the perception pass.
func NewController(isPredator bool, aggression float32) *Controller {
	c := &Controller{
		IsPredator: isPredator,
		Aggression: aggression,
	}
	c.needs[NeedHunger] = Need{
		Value: 0.8,
		Decay: 0.005,
		Curve: Curve{Kind: CurveExponential, Exponent: 2.5},
	}
	c.needs[NeedThirst] = Need{
		Value: 0.8,
		Decay: 0.003,
		Curve: Curve{Kind: CurveLogistic, Exponent: 10},
	}
	c.needs[NeedEnergy] = Need{
		Value: 1.0,
		Decay: 0.002,
		Curve: Curve{Kind: CurveLinear, Slope: 1},
	}
	c.needs[NeedSafety] = Need{
		Value: 1.0,
		Decay: 0,
		Curve: Curve{Kind: CurveExponential, Exponent: 3},
	}
	return c
}

// UpdateNeeds decays every need except Safety by its rate over dt seconds,
// clamping values to [0,1].
func (c *Controller) UpdateNeeds(dt float32) {
	for id := NeedID(0); id < needCount; id++ {
		if id == NeedSafety {
			continue
		}
		n := &c.needs[id]
		n.Value = clamp01(n.Value - n.Decay*dt)
	}
}

// NeedValue returns the current value of a need.
func (c *Controller) NeedValue(id NeedID) float32 {
	if id >= needCount {
		return 0
	}
	return c.needs[id].Value
}

// SetNeedValue overwrites a need's value, clamped to [0,1].
func (c *Controller) SetNeedValue(id NeedID, value float32) {
	if id >= needCount {
		return
	}
	c.needs[id].Value = clamp01(value)
}

// RestoreNeed raises a need by amount, clamped to [0,1].
func (c *Controller) RestoreNeed(id NeedID, amount float32) {
	if id >= needCount {
		return
	}
	c.needs[id].Value = clamp01(c.needs[id].Value + amount)
}

// Urgency returns curve.Evaluate(1 - value) for the need.
func (c *Controller) Urgency(id NeedID) float32 {
	if id >= needCount {
		return 0
	}
	n := &c.needs[id]
	return n.Curve.Evaluate(1 - n.Value)
}

// DecideAction scores the candidate actions against current urgencies and
// returns the winner, storing it as CurrentAction. Ties resolve to the
// candidate considered first.
func (c *Controller) DecideAction(threatVisible, foodVisible, waterNearby bool) Action {
	hungerUrg := c.Urgency(NeedHunger)
	thirstUrg := c.Urgency(NeedThirst)
	energyUrg := c.Urgency(NeedEnergy)
	safetyUrg := c.Urgency(NeedSafety)

	best := ActionIdle
	bestScore := float32(-1)
	consider := func(a Action, score float32) {
		if score > bestScore {
			best = a
			bestScore = score
		}
	}

	if threatVisible && !c.IsPredator {
		consider(ActionFlee, safetyUrg*2+0.5)
	}
	if c.IsPredator && foodVisible && hungerUrg > 0.3 {
		consider(ActionHunt, hungerUrg*c.Aggression*1.5)
	}
	if hungerUrg > 0.2 {
		mult := float32(1.2)
		if c.IsPredator {
			mult = 0.8
		}
		consider(ActionSeekFood, hungerUrg*mult)
	}
	if foodVisible && hungerUrg > 0.1 {
		consider(ActionEat, hungerUrg*1.3)
	}
	if thirstUrg > 0.2 {
		consider(ActionSeekWater, thirstUrg*1.1)
	}
	if waterNearby && thirstUrg > 0.1 {
		consider(ActionDrink, thirstUrg*1.4)
	}
	if energyUrg > 0.6 {
		consider(ActionSleep, energyUrg*0.9)
	}
	if threatVisible && c.IsPredator {
		consider(ActionDefend, c.Aggression*0.7)
	}
	consider(ActionWander, 0.1)
	consider(ActionIdle, 0.05)

	c.CurrentAction = best
	return best
}
