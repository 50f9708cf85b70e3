package constant

// Product environments (growing medium the product is formulated for)
const (
	EnvironmentUniversal = "universal"
	EnvironmentHydro     = "hydro"
	EnvironmentSoil      = "soil"
	EnvironmentCoco      = "coco"
	EnvironmentOrganic   = "organic"
)

var ProductEnvironments = []string{
	EnvironmentUniversal,
	EnvironmentHydro,
	EnvironmentSoil,
	EnvironmentCoco,
	EnvironmentOrganic,
}

// Base nutrient lines. A product carries either a base category or a target
// tag, never both.
const (
	VegaBaseCategory  = "vega"
	BloomBaseCategory = "bloom"
)

var ProductBaseCategories = []string{
	VegaBaseCategory,
	BloomBaseCategory,
}

// Growth phases. The slice order is the global phase order used for schedule
// sequencing; phase names within one product are unique.
const (
	PhaseStart            = "start"
	PhaseVegetativeFirst  = "vegetative_first"
	PhaseVegetativeSecond = "vegetative_second"
	PhaseGenerativeFirst  = "generative_first"
	PhaseGenerativeSecond = "generative_second"
	PhaseGenerativeThird  = "generative_third"
	PhaseGenerativeFourth = "generative_fourth"
)

var PhaseOrder = []string{
	PhaseStart,
	PhaseVegetativeFirst,
	PhaseVegetativeSecond,
	PhaseGenerativeFirst,
	PhaseGenerativeSecond,
	PhaseGenerativeThird,
	PhaseGenerativeFourth,
}

var PhaseTitles = map[string]string{
	PhaseStart:            "Start / Rooting",
	PhaseVegetativeFirst:  "Vegetative phase I",
	PhaseVegetativeSecond: "Vegetative phase II",
	PhaseGenerativeFirst:  "Generative period I",
	PhaseGenerativeSecond: "Generative period II",
	PhaseGenerativeThird:  "Generative period III",
	PhaseGenerativeFourth: "Generative period IV",
}

// User languages
const (
	RussianLanguage = "RU"
	EnglishLanguage = "EN"
)

var UserLanguages = []string{RussianLanguage, EnglishLanguage}

// Operating system classes. Only delivery mechanics branch on these: iOS
// receives the calendar file by email, the rest get the file directly.
const (
	AndroidOS = "android"
	IosOS     = "ios"
	MacOS     = "mac"
)

var UserOSClasses = []string{AndroidOS, IosOS, MacOS}

// Start date layout for the growing cycle (yyyy-mm-dd).
const CycleStartDateLayout = "2006-01-02"
