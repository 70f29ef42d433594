package settings

func w(name string, weight int) Weight {
	return Weight{Name: name, Weight: weight}
}

func f(name string, value float64) Factor {
	return Factor{Name: name, Value: value}
}

func prob(p float64) *float64 {
	return &p
}

// DefaultSettings returns the built-in generation tables.
func DefaultSettings() *Settings {
	s := &Settings{
		GalaxySizes: []GalaxySize{
			{Name: "Tiny", NumStars: 40, Width: 60, NominalPlayers: 2, StrategicResourceNumberPerType: 3, LuxuryResourceTypes: 6},
			{Name: "Small", NumStars: 80, Width: 85, NominalPlayers: 4, StrategicResourceNumberPerType: 4, LuxuryResourceTypes: 7},
			{Name: "Medium", NumStars: 150, Width: 115, NominalPlayers: 6, StrategicResourceNumberPerType: 5, LuxuryResourceTypes: 8},
			{Name: "Large", NumStars: 250, Width: 150, NominalPlayers: 8, StrategicResourceNumberPerType: 6, LuxuryResourceTypes: 8},
			{Name: "Huge", NumStars: 400, Width: 190, NominalPlayers: 8, StrategicResourceNumberPerType: 8, LuxuryResourceTypes: 8},
		},
		GalaxyAges: []GalaxyAge{
			{Name: "Young", StarTypes: []Weight{
				w("BlueGiant", 30), w("WhiteStar", 25), w("YellowStar", 20), w("OrangeStar", 10), w("RedDwarf", 10), w("NeutronStar", 5),
			}},
			{Name: "Mature", StarTypes: []Weight{
				w("BlueGiant", 10), w("WhiteStar", 15), w("YellowStar", 30), w("OrangeStar", 20), w("RedDwarf", 20), w("NeutronStar", 5),
			}},
			{Name: "Old", StarTypes: []Weight{
				w("BlueGiant", 5), w("WhiteStar", 10), w("YellowStar", 20), w("OrangeStar", 25), w("RedDwarf", 30), w("NeutronStar", 10),
			}},
		},
		GalaxyDensities:             []Factor{f("Low", 0.75), f("Normal", 1), f("High", 1.25)},
		StarConnectivities:          []Factor{f("Low", 2.5), f("Normal", 3), f("High", 3.5)},
		ConstellationConnectivities: []Factor{f("Low", 1), f("Normal", 2), f("High", 3)},
		StarPopulationBalancing:     []Factor{f("None", 0), f("Normal", 0.5), f("Full", 1)},
		ResourceRepartitionFactors:  []Factor{f("Low", 0.75), f("Normal", 1), f("High", 1.5)},

		PlanetsPerSystem: []Table{
			{Key: "Low", Weights: []Weight{w("1", 3), w("2", 4), w("3", 3), w("4", 1)}},
			{Key: "Normal", Weights: []Weight{w("1", 1), w("2", 3), w("3", 4), w("4", 3), w("5", 2), w("6", 1)}},
			{Key: "High", Weights: []Weight{w("3", 2), w("4", 3), w("5", 3), w("6", 2)}},
		},
		PlanetSizeFactors: []FactorSet{
			{Name: "Normal", Factors: []Factor{f("Tiny", 1), f("Small", 1), f("Medium", 1), f("Large", 1), f("Huge", 1)}},
			{Name: "Big", Factors: []Factor{f("Tiny", 0.5), f("Small", 0.75), f("Medium", 1), f("Large", 1.5), f("Huge", 2)}},
			{Name: "Small", Factors: []Factor{f("Tiny", 2), f("Small", 1.5), f("Medium", 1), f("Large", 0.75), f("Huge", 0.5)}},
		},

		ResourceDepositSizeIterations: []DepositIteration{
			{Pass: 1, Size: 2}, {Pass: 2, Size: 1}, {Pass: 3, Size: 2}, {Pass: 4, Size: 1}, {Pass: 5, Size: 1},
		},

		PlanetTypesPerStar: []Table{
			{Key: "BlueGiant", Weights: []Weight{w("Lava", 30), w("Barren", 30), w("Arid", 15), w("GasGiant", 20), w("Tundra", 5)}},
			{Key: "WhiteStar", Weights: []Weight{w("Lava", 15), w("Barren", 20), w("Arid", 20), w("Terran", 10), w("GasGiant", 20), w("Tundra", 15)}},
			{Key: "YellowStar", Weights: []Weight{w("Terran", 25), w("Ocean", 20), w("Jungle", 15), w("Arid", 10), w("GasGiant", 15), w("Barren", 10), w("Tundra", 5)}},
			{Key: "OrangeStar", Weights: []Weight{w("Terran", 15), w("Ocean", 15), w("Jungle", 20), w("Arid", 15), w("GasGiant", 15), w("Tundra", 20)}},
			{Key: "RedDwarf", Weights: []Weight{w("Tundra", 30), w("Barren", 30), w("GasGiant", 20), w("Arid", 10), w("Ocean", 10)}},
			{Key: "NeutronStar", Weights: []Weight{w("Barren", 50), w("Lava", 30), w("GasGiant", 20)}},
		},
		PlanetSizesPerType: []Table{
			{Key: "Terran", Weights: []Weight{w("Tiny", 5), w("Small", 20), w("Medium", 40), w("Large", 25), w("Huge", 10)}},
			{Key: "Ocean", Weights: []Weight{w("Small", 15), w("Medium", 40), w("Large", 30), w("Huge", 15)}},
			{Key: "Jungle", Weights: []Weight{w("Small", 25), w("Medium", 45), w("Large", 30)}},
			{Key: "Arid", Weights: []Weight{w("Tiny", 15), w("Small", 35), w("Medium", 35), w("Large", 15)}},
			{Key: "Tundra", Weights: []Weight{w("Tiny", 20), w("Small", 35), w("Medium", 30), w("Large", 15)}},
			{Key: "Barren", Weights: []Weight{w("Tiny", 40), w("Small", 35), w("Medium", 25)}},
			{Key: "Lava", Weights: []Weight{w("Tiny", 30), w("Small", 40), w("Medium", 30)}},
			{Key: "GasGiant", Weights: []Weight{w("Large", 40), w("Huge", 60)}},
		},

		MoonChances: []Weight{w("0", 40), w("1", 30), w("2", 20), w("3", 10)},
		MoonsPerPlanetType: []Table{
			{Key: "GasGiant", Weights: []Weight{w("0", 10), w("1", 20), w("2", 30), w("3", 25), w("4", 15)}},
			{Key: "Barren", Weights: []Weight{w("0", 70), w("1", 30)}},
		},

		TempleChancePerStar: []Weight{
			w("BlueGiant", 20), w("WhiteStar", 15), w("YellowStar", 10), w("OrangeStar", 10), w("RedDwarf", 5), w("NeutronStar", 25),
		},
		TempleTypes: []Weight{w("SunTemple", 3), w("MoonTemple", 2), w("VoidTemple", 1)},

		AnomalyBaseChance: 25,
		AnomalyScale:      []Weight{w("0", 0), w("1", 10), w("2", 30), w("3", 60)},
		AnomaliesPerPlanetType: []Table{
			{Key: "Terran", Weights: []Weight{w("AncientRuins", 2), w("Fertile", 3), w("Unstable", 1)}},
			{Key: "Ocean", Weights: []Weight{w("AncientRuins", 1), w("Fertile", 2), w("PlasmaStorms", 1)}},
			{Key: "Jungle", Weights: []Weight{w("AncientRuins", 2), w("Fertile", 3), w("Radiation", 1)}},
			{Key: "Arid", Weights: []Weight{w("AncientRuins", 3), w("HighGravity", 1), w("Radiation", 2)}},
			{Key: "Tundra", Weights: []Weight{w("AncientRuins", 1), w("HighGravity", 2), w("Unstable", 1)}},
			{Key: "Barren", Weights: []Weight{w("HighGravity", 2), w("Radiation", 3), w("Unstable", 2)}},
			{Key: "Lava", Weights: []Weight{w("Unstable", 3), w("Radiation", 2), w("PlasmaStorms", 1)}},
			{Key: "GasGiant", Weights: []Weight{w("PlasmaStorms", 3), w("HighGravity", 2)}},
		},

		StrategicResources: []string{"Titanium", "Hyperium", "Antimatter", "Adamantian", "Orichalcum"},
		StrategicScale:     []Weight{w("0", 0), w("1", 10), w("2", 30), w("3", 60)},
		StrategicsPerType: []Table{
			{Key: "Terran", Weights: []Weight{w("Titanium", 1), w("Hyperium", 1), w("Adamantian", 1)}},
			{Key: "Ocean", Weights: []Weight{w("Hyperium", 2), w("Orichalcum", 1)}},
			{Key: "Jungle", Weights: []Weight{w("Hyperium", 1), w("Orichalcum", 2)}},
			{Key: "Arid", Weights: []Weight{w("Titanium", 3), w("Adamantian", 1)}},
			{Key: "Tundra", Weights: []Weight{w("Titanium", 2), w("Orichalcum", 1)}},
			{Key: "Barren", Weights: []Weight{w("Titanium", 2), w("Adamantian", 3), w("Antimatter", 1)}},
			{Key: "Lava", Weights: []Weight{w("Adamantian", 2), w("Antimatter", 3)}},
			{Key: "GasGiant", Weights: []Weight{w("Hyperium", 3), w("Antimatter", 2)}},
		},

		LuxuryTiers: []LuxuryTier{
			{Priority: 1, Names: []string{"Spices", "Silk", "Wine"}},
			{Priority: 2, Names: []string{"Crystals", "Gems", "Perfume"}},
			{Priority: 3, Names: []string{"Relics", "Nectar"}},
		},
		LuxuryScale: []Weight{w("0", 0), w("1", 10), w("2", 30), w("3", 60)},
		LuxuriesPerType: []Table{
			{Key: "Terran", Weights: []Weight{w("Spices", 3), w("Silk", 2), w("Wine", 3), w("Perfume", 1)}},
			{Key: "Ocean", Weights: []Weight{w("Silk", 1), w("Perfume", 3), w("Nectar", 2)}},
			{Key: "Jungle", Weights: []Weight{w("Spices", 3), w("Wine", 2), w("Nectar", 3)}},
			{Key: "Arid", Weights: []Weight{w("Spices", 1), w("Crystals", 3), w("Relics", 2)}},
			{Key: "Tundra", Weights: []Weight{w("Crystals", 2), w("Gems", 2), w("Relics", 1)}},
			{Key: "Barren", Weights: []Weight{w("Gems", 3), w("Relics", 2)}},
			{Key: "Lava", Weights: []Weight{w("Crystals", 2), w("Gems", 3)}},
			{Key: "GasGiant", Weights: []Weight{w("Nectar", 1), w("Perfume", 1)}},
		},

		Constraints: Constraints{
			MinEmpireDistance:        20,
			MinStarDistance:          2.5,
			MinStarsPerConstellation: 5,
		},

		StarNames: []string{
			"Achernar", "Acrux", "Adhara", "Albireo", "Alcor", "Aldebaran", "Algol", "Alioth", "Alkaid", "Almach",
			"Alnair", "Alnilam", "Alphard", "Altair", "Ankaa", "Antares", "Arcturus", "Atria", "Avior", "Bellatrix",
			"Betelgeuse", "Canopus", "Capella", "Caph", "Castor", "Deneb", "Diphda", "Dubhe", "Elnath", "Eltanin",
			"Enif", "Fomalhaut", "Gacrux", "Hadar", "Hamal", "Izar", "Kochab", "Markab", "Menkar", "Merak",
			"Mimosa", "Mintaka", "Mirach", "Mirfak", "Mizar", "Naos", "Nunki", "Peacock", "Polaris", "Pollux",
			"Procyon", "Rasalhague", "Regulus", "Rigel", "Sabik", "Sadr", "Saiph", "Scheat", "Shaula", "Sirius",
			"Spica", "Suhail", "Thuban", "Unukalhai", "Vega", "Wezen", "Zaurak", "Zubenelgenubi",
		},
		ConstellationNames: []string{
			"Andromeda", "Aquila", "Ara", "Auriga", "Bootes", "Carina", "Cassiopeia", "Centaurus", "Cepheus", "Cetus",
			"Corvus", "Crux", "Cygnus", "Draco", "Eridanus", "Hydra", "Lyra", "Orion", "Pegasus", "Perseus",
			"Phoenix", "Pyxis", "Scorpius", "Vela",
		},

		HomeTraits: []HomeTrait{
			{Name: "RichHome", Ops: []TraitOp{
				{Op: "OverrideType", Target: "homeworld", Weights: []Weight{w("Terran", 3), w("Ocean", 1)}},
				{Op: "OverrideSize", Target: "homeworld", Weights: []Weight{w("Large", 2), w("Huge", 1)}},
				{Op: "InhibitAnomalies", Target: "homeworld", All: true},
			}},
			{Name: "StableStar", Ops: []TraitOp{
				{Op: "OverrideStarType", Weights: []Weight{w("YellowStar", 1)}},
			}},
			{Name: "CrowdedSystem", Ops: []TraitOp{
				{Op: "OverridePlanetsInSystem", Probability: prob(0.5), Weights: []Weight{w("5", 1), w("6", 1)}},
			}},
			{Name: "AncientNeighbors", Ops: []TraitOp{
				{Op: "OverrideAnomaly", Target: "others", Probability: prob(0.5), Weights: []Weight{w("AncientRuins", 1)}},
			}},
			{Name: "Sheltered", Ops: []TraitOp{
				{Op: "InhibitStrategics", Target: "homeworld", All: true},
				{Op: "InhibitLuxuries", Target: "homeworld", All: true},
			}},
		},
	}
	return s
}
