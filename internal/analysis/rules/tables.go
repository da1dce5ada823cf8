package rules

// Table names, also the YAML override keys.
const (
	TableCompanySuffixes  = "company_suffixes"
	TableUSStates         = "us_states"
	TableCanadianRegions  = "canadian_regions"
	TableAustralianStates = "australian_states"
	TableGermanRegions    = "german_regions"
	TableUKRegions        = "uk_regions"
)

// companySuffixRecords expand legal-form abbreviations that appear in company
// names. An abbreviation used in several jurisdictions expands to every full
// form as sibling alternatives.
var companySuffixRecords = []string{
	"corp => corporation",
	"co => company",
	"inc => incorporated",
	"ltd => limited",
	"llc => limited liability company",
	"llp => limited liability partnership",
	"lp => limited partnership",
	"plc => public limited company",
	"gmbh => gesellschaft mit beschrankter haftung",
	"ag => aktiengesellschaft",
	"sa => societe anonyme, sociedade anonima, spolka akcyjna",
	"sarl => societe a responsabilite limitee",
	"bv => besloten vennootschap",
	"nv => naamloze vennootschap",
	"ab => aktiebolag",
	"oy => osakeyhtio",
	"as => aksjeselskap",
	"spa => societa per azioni",
	"srl => societa a responsabilita limitata, sociedad de responsabilidad limitada",
	"pty => proprietary",
	"kk => kabushiki kaisha",
	"ug => unternehmergesellschaft",
}

var usStateRecords = []string{
	"al => alabama",
	"ak => alaska",
	"az => arizona",
	"ar => arkansas",
	"ca => california",
	"co => colorado",
	"ct => connecticut",
	"de => delaware",
	"fl => florida",
	"ga => georgia",
	"hi => hawaii",
	"id => idaho",
	"il => illinois",
	"in => indiana",
	"ia => iowa",
	"ks => kansas",
	"ky => kentucky",
	"la => louisiana",
	"me => maine",
	"md => maryland",
	"ma => massachusetts",
	"mi => michigan",
	"mn => minnesota",
	"ms => mississippi",
	"mo => missouri",
	"mt => montana",
	"ne => nebraska",
	"nv => nevada",
	"nh => new hampshire",
	"nj => new jersey",
	"nm => new mexico",
	"ny => new york",
	"nc => north carolina",
	"nd => north dakota",
	"oh => ohio",
	"ok => oklahoma",
	"or => oregon",
	"pa => pennsylvania",
	"ri => rhode island",
	"sc => south carolina",
	"sd => south dakota",
	"tn => tennessee",
	"tx => texas",
	"ut => utah",
	"vt => vermont",
	"va => virginia",
	"wa => washington",
	"wv => west virginia",
	"wi => wisconsin",
	"wy => wyoming",
	"dc => district of columbia",
}

// canadianRegionRecords also define "ca"; the US table precedes this one in
// the locality chain, so the US rule wins for that surface form.
var canadianRegionRecords = []string{
	"ab => alberta",
	"bc => british columbia",
	"mb => manitoba",
	"nb => new brunswick",
	"nl => newfoundland and labrador",
	"ns => nova scotia",
	"nt => northwest territories",
	"nu => nunavut",
	"on => ontario",
	"pe => prince edward island",
	"qc => quebec",
	"ca => quebec",
	"sk => saskatchewan",
	"yt => yukon",
}

var australianStateRecords = []string{
	"nsw => new south wales",
	"vic => victoria",
	"qld => queensland",
	"sa => south australia",
	"wa => western australia",
	"tas => tasmania",
	"nt => northern territory",
	"act => australian capital territory",
}

var germanRegionRecords = []string{
	"bw => baden wurttemberg",
	"by => bayern",
	"be => berlin",
	"bb => brandenburg",
	"hb => bremen",
	"hh => hamburg",
	"he => hessen",
	"mv => mecklenburg vorpommern",
	"ni => niedersachsen",
	"nrw => nordrhein westfalen",
	"rp => rheinland pfalz",
	"sl => saarland",
	"sn => sachsen",
	"st => sachsen anhalt",
	"sh => schleswig holstein",
	"th => thuringen",
}

var ukRegionRecords = []string{
	"uk => united kingdom",
	"gb => great britain",
	"eng => england",
	"sct => scotland",
	"wls => wales",
	"nir => northern ireland",
	"ldn => london",
}

// englishStopwords is the classic English stopword list.
var englishStopwords = []string{
	"a", "an", "and", "are", "as", "at", "be", "but", "by",
	"for", "if", "in", "into", "is", "it",
	"no", "not", "of", "on", "or", "such",
	"that", "the", "their", "then", "there", "these",
	"they", "this", "to", "was", "will", "with",
}

// defaultTableRecords maps table name to its built-in records.
var defaultTableRecords = map[string][]string{
	TableCompanySuffixes:  companySuffixRecords,
	TableUSStates:         usStateRecords,
	TableCanadianRegions:  canadianRegionRecords,
	TableAustralianStates: australianStateRecords,
	TableGermanRegions:    germanRegionRecords,
	TableUKRegions:        ukRegionRecords,
}
