package domain

// DefaultScoringConfig is the configuration seeded on first start and
// restored by a full reset. Tests rely on these exact values.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		BasePoints:       1000,
		TimeoutDeduction: 50,
		Obstacles: []Obstacle{
			{ID: "obs1", Name: "The Slalom", MaxPoints: 100},
			{ID: "obs2", Name: "Ramp Climb", MaxPoints: 150},
			{ID: "obs3", Name: "Precision Gap", MaxPoints: 100},
			{ID: "obs4", Name: "Heavy Lift", MaxPoints: 200},
			{ID: "obs5", Name: "Autonomous Zone", MaxPoints: 300},
		},
		Penalties: []PenaltyType{
			{ID: "p1", Name: "Manual Reset", Points: 100},
			{ID: "p2", Name: "Boundary Violation", Points: 50},
			{ID: "p3", Name: "Safety Warning", Points: 200},
		},
	}
}

// SeedTeams is the registry seeded on first start and restored by a full reset.
func SeedTeams() []Team {
	return []Team{
		{Number: "101", Name: "CyberKnights", School: "Tech Academy"},
		{Number: "202", Name: "RoboRaptors", School: "Lincoln High"},
		{Number: "303", Name: "GearGrinders", School: "Central Middle"},
	}
}
