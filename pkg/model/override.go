package model

// Operator-maintained override data, seeded from a yaml file at ingest time.

type ConstructorOverride struct {
	ConstructorRef string `yaml:"constructor"`
	ShortName      string `yaml:"shortName"`
}

// Livery assigns a display color to a constructor for a range of seasons.
type Livery struct {
	ConstructorRef string `yaml:"constructor"`
	FirstYear      int    `yaml:"firstYear"`
	LastYear       int    `yaml:"lastYear"`
	Color          string `yaml:"color"`
}

// TeamRankOverride pins a driver's within-team rank for a season,
// taking precedence over the computed value.
type TeamRankOverride struct {
	Year           int    `yaml:"year"`
	ConstructorRef string `yaml:"constructor"`
	DriverRef      string `yaml:"driver"`
	Rank           int    `yaml:"rank"`
}

// Overrides is the document shape of the operator overrides yaml file.
type Overrides struct {
	ShortNames []ConstructorOverride `yaml:"shortNames"`
	Liveries   []Livery              `yaml:"liveries"`
	TeamRanks  []TeamRankOverride    `yaml:"teamRanks"`
}
