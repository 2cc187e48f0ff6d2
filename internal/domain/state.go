package domain

// SimulationState - снимок одного тика для рендерера. Не хранится.
type SimulationState struct {
	Tick uint64 `json:"tick"`

	ShopperZone   ZoneName `json:"shopperZone"`
	ShopperPos    Position `json:"shopperPos"`
	ShopperAvatar int      `json:"shopperAvatar"`
	ShopperVisit  int      `json:"shopperVisit"` // номер "жизни" покупателя, растет при каждом респавне

	PursuerPos Position `json:"pursuerPos"`

	// Collided - на этом тике была поимка и покупатель возрожден у входа
	Collided bool `json:"collided"`
	Respawns int  `json:"respawns"`
}
