package types

// ClassInfo describes one supported label.
type ClassInfo struct {
	// Raw label as produced by the model.
	// example: unripe banana
	Label string `json:"label" example:"unripe banana"`
	// example: banana
	Fruit string `json:"fruit" example:"banana"`
	// example: Pisang
	FruitName string `json:"fruit_name" example:"Pisang"`
	// example: unripe
	Condition string `json:"condition" example:"unripe"`
	// example: Belum Matang
	ConditionName string `json:"condition_name" example:"Belum Matang"`
}
