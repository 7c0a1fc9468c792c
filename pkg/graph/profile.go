package graph

// Profile holds the source-vocabulary property and class ids each feature
// pass queries with. The defaults target Wikidata's literary modelling; a
// deployment against a differently-curated corpus can override them through
// the YAML profile file.
type Profile struct {
	// IdentifierTypeEntity is the source record describing the identifier
	// scheme itself.
	IdentifierTypeEntity string `yaml:"identifier_type_entity"`

	// AboutProperties relate a work to what it depicts or is about.
	AboutProperties []string `yaml:"about_properties"`

	TopicClass string `yaml:"topic_class"`

	PlotProperties []string `yaml:"plot_properties"`
	PlotClass      string   `yaml:"plot_class"`

	MotifProperty string   `yaml:"motif_property"`
	MotifClasses  []string `yaml:"motif_classes"`

	PersonClass string `yaml:"person_class"`
	PlaceClass  string `yaml:"place_class"`

	CharacterProperty string   `yaml:"character_property"`
	CharacterClasses  []string `yaml:"character_classes"`

	WorkReferenceProperties []string `yaml:"work_reference_properties"`
	CitationProperties      []string `yaml:"citation_properties"`

	// Direct relation assertions between two listed works, forward from the
	// citing side and backward from the cited side.
	DirectForwardProperties  []string `yaml:"direct_forward_properties"`
	DirectBackwardProperties []string `yaml:"direct_backward_properties"`
}

// DefaultProfile returns the stock Wikidata profile.
func DefaultProfile() Profile {
	return Profile{
		IdentifierTypeEntity: "Q43649390",

		AboutProperties: []string{"P921", "P180", "P527"},

		TopicClass: "Q26256810",

		PlotProperties: []string{"P180", "P527", "P921"},
		PlotClass:      "Q42109240",

		MotifProperty: "P6962",
		MotifClasses:  []string{"Q1229071", "Q68614425", "Q1697305"},

		PersonClass: "Q5",
		PlaceClass:  "Q2221906",

		CharacterProperty: "P674",
		CharacterClasses: []string{
			"Q95074", "Q3658341", "Q15632617",
			"Q97498056", "Q122192387", "Q115537581",
		},

		WorkReferenceProperties: []string{"P361", "P1299"},
		CitationProperties:      []string{"P2860", "P6166"},

		DirectForwardProperties:  []string{"P4969", "P2512", "P921"},
		DirectBackwardProperties: []string{"P144", "P5059", "P941"},
	}
}
