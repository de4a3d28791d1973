package level

// Bloom is the pedagogical tier driving question content and maze difficulty.
type Bloom int

const (
	Remember Bloom = iota + 1
	Understand
	Apply
	Analyze
	Create
)

// String returns the name of the tier.
func (b Bloom) String() string {
	switch b {
	case Remember:
		return "Remember"
	case Understand:
		return "Understand"
	case Apply:
		return "Apply"
	case Analyze:
		return "Analyze"
	case Create:
		return "Create"
	default:
		return "Unknown"
	}
}

func defaultDefinitions() []Definition {
	return []Definition{
		{
			Number:            1,
			Name:              "Ohm's Foundation",
			Theme:             "Basic Circuits",
			Color:             "#4CAF50",
			Bloom:             Remember,
			QuestionsRequired: 3,
			Width:             10,
			Height:            10,
			Difficulty:        1,
			Start:             Point{X: 1, Y: 1},
			Exit:              Point{X: 9, Y: 9},
			QuestionGates:     []Point{{X: 3, Y: 3}, {X: 6, Y: 4}, {X: 4, Y: 7}},
			Enemies: []Enemy{
				{Type: "resistor", Point: Point{X: 5, Y: 5}, Speed: 1},
				{Type: "capacitor", Point: Point{X: 7, Y: 2}, Speed: 0.8},
			},
			Collectibles: []Collectible{
				{Type: "battery", Point: Point{X: 2, Y: 8}, Value: 100},
				{Type: "wire", Point: Point{X: 8, Y: 1}, Value: 50},
			},
		},
		{
			Number:            2,
			Name:              "Current Understanding",
			Theme:             "Series & Parallel",
			Color:             "#2196F3",
			Bloom:             Understand,
			QuestionsRequired: 4,
			Width:             12,
			Height:            12,
			Difficulty:        2,
			Start:             Point{X: 0, Y: 6},
			Exit:              Point{X: 11, Y: 6},
			QuestionGates:     []Point{{X: 2, Y: 2}, {X: 9, Y: 2}, {X: 2, Y: 9}, {X: 9, Y: 9}},
			Enemies: []Enemy{
				{Type: "resistor", Point: Point{X: 4, Y: 4}, Speed: 1.2},
				{Type: "capacitor", Point: Point{X: 7, Y: 4}, Speed: 1},
				{Type: "inductor", Point: Point{X: 5, Y: 7}, Speed: 0.9},
			},
			Collectibles: []Collectible{
				{Type: "battery", Point: Point{X: 1, Y: 1}, Value: 100},
				{Type: "battery", Point: Point{X: 10, Y: 10}, Value: 100},
				{Type: "wire", Point: Point{X: 5, Y: 5}, Value: 50},
				{Type: "wire", Point: Point{X: 6, Y: 6}, Value: 50},
			},
		},
		{
			Number:            3,
			Name:              "Formula Application",
			Theme:             "Circuit Calculations",
			Color:             "#FF9800",
			Bloom:             Apply,
			QuestionsRequired: 4,
			Width:             15,
			Height:            15,
			Difficulty:        3,
			Start:             Point{X: 0, Y: 0},
			Exit:              Point{X: 14, Y: 14, Z: 1},
			QuestionGates:     []Point{{X: 3, Y: 7}, {X: 7, Y: 3}, {X: 11, Y: 7}, {X: 7, Y: 11, Z: 1}},
			Enemies: []Enemy{
				{Type: "resistor", Point: Point{X: 2, Y: 2}, Speed: 1.5},
				{Type: "capacitor", Point: Point{X: 12, Y: 2}, Speed: 1.3},
				{Type: "inductor", Point: Point{X: 2, Y: 12}, Speed: 1.2},
				{Type: "transistor", Point: Point{X: 12, Y: 12}, Speed: 1},
			},
			Collectibles: []Collectible{
				{Type: "battery", Point: Point{X: 7, Y: 7}, Value: 200},
				{Type: "multimeter", Point: Point{X: 4, Y: 10}, Value: 150},
				{Type: "oscilloscope", Point: Point{X: 10, Y: 4}, Value: 150},
			},
		},
		{
			Number:            4,
			Name:              "Circuit Analysis",
			Theme:             "Complex Networks",
			Color:             "#9C27B0",
			Bloom:             Analyze,
			QuestionsRequired: 5,
			Width:             18,
			Height:            18,
			Difficulty:        4,
			Start:             Point{X: 0, Y: 9},
			Exit:              Point{X: 17, Y: 9, Z: 2},
			QuestionGates: []Point{
				{X: 4, Y: 4}, {X: 13, Y: 4}, {X: 4, Y: 13, Z: 1}, {X: 13, Y: 13, Z: 1}, {X: 8, Y: 8, Z: 2},
			},
			Enemies: []Enemy{
				{Type: "resistor", Point: Point{X: 3, Y: 3}, Speed: 1.8, Pattern: "circle"},
				{Type: "capacitor", Point: Point{X: 14, Y: 3}, Speed: 1.6, Pattern: "patrol"},
				{Type: "inductor", Point: Point{X: 3, Y: 14, Z: 1}, Speed: 1.4, Pattern: "circle"},
				{Type: "transistor", Point: Point{X: 14, Y: 14, Z: 1}, Speed: 1.2, Pattern: "patrol"},
				{Type: "ic", Point: Point{X: 8, Y: 8}, Speed: 2, Pattern: "chase"},
			},
			Collectibles: []Collectible{
				{Type: "battery", Point: Point{X: 1, Y: 1}, Value: 250},
				{Type: "battery", Point: Point{X: 16, Y: 1}, Value: 250},
				{Type: "battery", Point: Point{X: 1, Y: 16, Z: 1}, Value: 250},
				{Type: "battery", Point: Point{X: 16, Y: 16, Z: 1}, Value: 250},
				{Type: "gold_wire", Point: Point{X: 8, Y: 8, Z: 2}, Value: 500},
			},
		},
		{
			Number:            5,
			Name:              "Circuit Creation",
			Theme:             "Design Challenges",
			Color:             "#F44336",
			Bloom:             Create,
			QuestionsRequired: 5,
			Width:             20,
			Height:            20,
			Difficulty:        5,
			Start:             Point{X: 0, Y: 10},
			Exit:              Point{X: 19, Y: 10, Z: 3},
			QuestionGates: []Point{
				{X: 5, Y: 5}, {X: 14, Y: 5, Z: 1}, {X: 5, Y: 14, Z: 1}, {X: 14, Y: 14, Z: 2}, {X: 9, Y: 9, Z: 3},
			},
			Enemies: []Enemy{
				{Type: "resistor", Point: Point{X: 2, Y: 2}, Speed: 2, Pattern: "aggressive"},
				{Type: "capacitor", Point: Point{X: 17, Y: 2}, Speed: 1.8, Pattern: "aggressive"},
				{Type: "inductor", Point: Point{X: 2, Y: 17, Z: 2}, Speed: 1.6, Pattern: "aggressive"},
				{Type: "transistor", Point: Point{X: 17, Y: 17, Z: 2}, Speed: 1.4, Pattern: "aggressive"},
				{Type: "ic", Point: Point{X: 9, Y: 2, Z: 1}, Speed: 2.2, Pattern: "chase"},
				{Type: "ic", Point: Point{X: 9, Y: 17, Z: 1}, Speed: 2.2, Pattern: "chase"},
			},
			Collectibles: []Collectible{
				{Type: "battery", Point: Point{X: 10, Y: 1}, Value: 300},
				{Type: "battery", Point: Point{X: 1, Y: 10, Z: 1}, Value: 300},
				{Type: "battery", Point: Point{X: 18, Y: 10, Z: 1}, Value: 300},
				{Type: "battery", Point: Point{X: 10, Y: 18, Z: 2}, Value: 300},
				{Type: "diamond_chip", Point: Point{X: 10, Y: 10, Z: 3}, Value: 1000},
			},
		},
	}
}
